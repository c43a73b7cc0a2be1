package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/advisor"
	"github.com/spigell/car-advisor/internal/catalog"
)

const (
	PromptSummarize    = "Summarize a car"
	PromptReportByBody = "Report by body type"
	PromptCarsToFile   = "Dump cars to file"
	PromptExit         = "Exit"
	PromptBack         = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSummarize, PromptReportByBody, PromptCarsToFile, PromptExit},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Suggest cars matching keywords and a budget",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("keywords", "k", "", "space separated keywords, e.g. \"suv hybrid\"")
	searchCmd.Flags().Float64P("budget", "b", 0, "maximum average price; unset means no budget")
	searchCmd.Flags().String("type", advisor.AnySelection, "body type: SUV, Truck, Sedan, Sports Car, Minivan or Any")
	searchCmd.Flags().String("size", advisor.AnySelection, "size: Compact, Mid-Size, Full-Size, Subcompact or Any")
	searchCmd.Flags().String("drivetrain", advisor.AnySelection, "drivetrain: Hybrid, Electric, Gas or Any")
	searchCmd.Flags().BoolP("summarize", "s", false, "attach a pros and cons summary to every suggestion")
	searchCmd.Flags().BoolP("interactive", "i", false, "open a menu after the search")
}

func search(cmd *cobra.Command) {
	ctx := context.Background()
	env := bootstrap(ctx)

	req, err := searchRequest(cmd)
	if err != nil {
		env.logger.Fatal("parsing search flags", zap.Error(err))
	}

	suggestions, err := env.advisor.Suggest(ctx, req)
	if err != nil {
		env.logger.Fatal("searching cars", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if err := printJSON(out, map[string]any{"cars": suggestions}); err != nil {
		env.logger.Fatal("printing suggestions", zap.Error(err))
	}

	if len(suggestions) == 0 {
		env.logger.Info("exiting", zap.String("reason", "no cars found"))
		return
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	vehicles := toVehicles(suggestions)
	for {
		_, action, err := prompt.Run()
		if err != nil {
			env.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, env, vehicles, out, pickCar); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			env.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func searchRequest(cmd *cobra.Command) (advisor.Request, error) {
	flags := cmd.Flags()

	var req advisor.Request
	var err error

	if req.Keywords, err = flags.GetString("keywords"); err != nil {
		return req, err
	}
	if req.Type, err = flags.GetString("type"); err != nil {
		return req, err
	}
	if req.Size, err = flags.GetString("size"); err != nil {
		return req, err
	}
	if req.Drivetrain, err = flags.GetString("drivetrain"); err != nil {
		return req, err
	}
	if req.Summarize, err = flags.GetBool("summarize"); err != nil {
		return req, err
	}

	if flags.Changed("budget") {
		budget, err := flags.GetFloat64("budget")
		if err != nil {
			return req, err
		}
		if err := advisor.ValidateBudget(&budget); err != nil {
			return req, err
		}
		req.Budget = &budget
	}

	return req, nil
}

// carPicker asks which car to act on. It returns PromptBack to cancel.
type carPicker func(names []string) (string, error)

func pickCar(names []string) (string, error) {
	carPrompt := promptui.Select{
		Label: "Choose a car and press ENTER",
		Items: append(append([]string{}, names...), PromptBack),
	}
	_, selected, err := carPrompt.Run()
	return selected, err
}

func handleAction(ctx context.Context, action string, env *environment, vehicles *catalog.Vehicles, out io.Writer, pick carPicker) error {
	switch action {
	case PromptExit:
		env.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptSummarize:
		selected, err := pick(vehicles.Names())
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		for _, vehicle := range vehicles.Items {
			if vehicle.Name() != selected {
				continue
			}
			summary, err := env.advisor.Summarize(ctx, vehicle.Make, vehicle.Model)
			if err != nil {
				return fmt.Errorf("summarize %s: %w", selected, err)
			}
			fmt.Fprintf(out, "%s: %s\n", selected, summary.Text)
			return nil
		}
		return fmt.Errorf("there is no such car %s", selected)
	case PromptReportByBody:
		env.logger.Info("report by body type", zap.Int("cars count", vehicles.Len()))
		return printJSON(out, vehicles.ReportByBodyType())
	case PromptCarsToFile:
		filename, err := vehicles.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		env.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func toVehicles(suggestions []advisor.Suggestion) *catalog.Vehicles {
	items := make([]catalog.Vehicle, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, s.Vehicle)
	}
	return &catalog.Vehicles{Items: items}
}

func printJSON(out io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(pretty))
	return err
}
