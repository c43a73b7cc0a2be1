package catalog

// Default returns the built-in catalog shipped with the application.
func Default() *Catalog {
	return MustNew(defaultRecords()...)
}

func defaultRecords() []Vehicle {
	return []Vehicle{
		{
			Make:         "Toyota",
			Model:        "RAV4",
			Trims:        []string{"LE", "XLE", "Limited"},
			AveragePrice: 28000,
			Pros:         []string{"Reliable", "Good resale value", "Spacious interior", "Great fuel economy"},
			Cons:         []string{"Basic features", "Not very sporty", "Mediocre fuel economy", "Less cargo space than competitors"},
			Drivetrain:   DrivetrainHybrid,
			BodyType:     "SUV",
			Size:         "compact",
		},
		{
			Make:         "Ford",
			Model:        "F-150",
			Trims:        []string{"XL", "XLT", "Lariat"},
			AveragePrice: 35000,
			Pros:         []string{"Powerful", "High towing capacity", "Versatile", "Wide range of configurations", "Available with advanced tech"},
			Cons:         []string{"Poor fuel economy", "Can be expensive", "Large size", "Base models lack features"},
			Drivetrain:   DrivetrainHybrid | DrivetrainElectric | DrivetrainGas,
			BodyType:     "Truck",
			Size:         "full-size",
		},
		{
			Make:         "Tesla",
			Model:        "Model 3",
			Trims:        []string{"Standard Range Plus", "Long Range", "Performance"},
			AveragePrice: 45000,
			Pros:         []string{"Electric", "Advanced technology", "Quick acceleration", "Sleek design", "Low running costs"},
			Cons:         []string{"Expensive", "Charging infrastructure", "Limited service centers", "Range anxiety"},
			Drivetrain:   DrivetrainElectric,
			BodyType:     "Sedan",
			Size:         "compact",
		},
		{
			Make:         "Honda",
			Model:        "Civic",
			Trims:        []string{"LX", "Sport", "EX"},
			AveragePrice: 23000,
			Pros:         []string{"Fuel efficient", "Fun to drive", "Affordable", "Reliable", "Good safety ratings"},
			Cons:         []string{"Small back seat", "Road noise", "Basic interior", "Less cargo space"},
			Drivetrain:   DrivetrainGas,
			BodyType:     "Sedan",
			Size:         "compact",
		},
		{
			Make:         "Chevrolet",
			Model:        "Suburban",
			Trims:        []string{"LS", "LT", "Premier"},
			AveragePrice: 60000,
			Pros:         []string{"Very spacious", "Powerful engine", "Comfortable ride", "Excellent for large families", "High towing capacity"},
			Cons:         []string{"Expensive", "Poor fuel economy", "Hard to park", "Bulky size"},
			Drivetrain:   DrivetrainGas,
			BodyType:     "SUV",
			Size:         "full-size",
		},
		{
			Make:         "GMC",
			Model:        "Sierra",
			Trims:        []string{"Base", "SLE", "SLT"},
			AveragePrice: 40000,
			Pros:         []string{"Strong engine options", "Comfortable interior", "Good towing", "Refined interior", "Available with advanced features"},
			Cons:         []string{"Can be pricey", "Lower fuel economy", "Styling is subjective", "Ride can be stiff"},
			Drivetrain:   DrivetrainGas,
			BodyType:     "Truck",
			Size:         "full-size",
		},
		{
			Make:         "Chrysler",
			Model:        "Pacifica",
			Trims:        []string{"Touring", "Touring L", "Limited"},
			AveragePrice: 38000,
			Pros:         []string{"Spacious interior", "Comfortable seating", "Available hybrid option", "Lots of storage", "Smooth ride"},
			Cons:         []string{"Can be expensive", "Styling is not for everyone", "Some reliability concerns", "Not very sporty"},
			Drivetrain:   DrivetrainHybrid,
			BodyType:     "Minivan",
			Size:         "full-size",
		},
		{
			Make:         "Mazda",
			Model:        "MX-5 Miata",
			Trims:        []string{"Sport", "Club", "Grand Touring"},
			AveragePrice: 30000,
			Pros:         []string{"Fun to drive", "Agile handling", "Convertible", "Affordable sports car", "Stylish"},
			Cons:         []string{"Small interior", "Limited cargo space", "Not practical for families", "Can be noisy"},
			Drivetrain:   DrivetrainGas,
			BodyType:     "Sports Car",
			Size:         "compact",
		},
	}
}
