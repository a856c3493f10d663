package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"ai-trainer/internal/app"
	"ai-trainer/internal/config"
	"ai-trainer/internal/inquiry"
	"ai-trainer/internal/planner"
	"ai-trainer/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "generate", "show", "clear", "inquiry", "usage", "metrics-cleanup", "status":
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	application, err := app.Open(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := run(ctx, application, command, args); err != nil {
		application.Close()
		var verrs inquiry.ValidationErrors
		if errors.As(err, &verrs) {
			os.Exit(2)
		}
		log.Fatalf("%s failed: %v", command, err)
	}
	application.Close()
}

func run(ctx context.Context, application *app.App, command string, args []string) error {
	switch command {
	case "generate":
		defaults := planner.DefaultPreferences()
		cmd := flag.NewFlagSet("generate", flag.ExitOnError)
		goal := cmd.String("goal", defaults.Goal, "Goal: "+strings.Join(planner.Goals, ", "))
		level := cmd.String("level", defaults.FitnessLevel, "Fitness level: "+strings.Join(planner.FitnessLevels, ", "))
		cuisine := cmd.String("cuisine", defaults.Cuisine, "Diet: "+strings.Join(planner.Cuisines, ", "))
		minutes := cmd.String("time", defaults.AvailableTime, "Minutes available per session")
		age := cmd.String("age", fmt.Sprint(defaults.Age), "Age in years")
		weight := cmd.String("weight", fmt.Sprint(defaults.Weight), "Weight in kg")
		gender := cmd.String("gender", defaults.Gender, "Gender: "+strings.Join(planner.Genders, ", "))
		tab := cmd.String("tab", "workout", "Tab to print: workout, diet or all")
		cmd.Parse(args)

		prefs := planner.UserPreferences{
			Goal:          *goal,
			FitnessLevel:  *level,
			Cuisine:       *cuisine,
			AvailableTime: *minutes,
			Gender:        *gender,
		}
		var err error
		if prefs.Age, err = planner.ParseWholeNumber("age", *age); err != nil {
			return err
		}
		if prefs.Weight, err = planner.ParseWholeNumber("weight", *weight); err != nil {
			return err
		}
		t, err := render.ParseTab(*tab)
		if err != nil {
			return err
		}
		return application.GeneratePlan(ctx, prefs, t)

	case "show":
		cmd := flag.NewFlagSet("show", flag.ExitOnError)
		tab := cmd.String("tab", "workout", "Tab to print: workout, diet or all")
		cmd.Parse(args)

		t, err := render.ParseTab(*tab)
		if err != nil {
			return err
		}
		return application.ShowPlan(ctx, t)

	case "clear":
		return application.ClearPlan(ctx)

	case "inquiry":
		return runInquiry(ctx, application, args)

	case "usage":
		cmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := cmd.Int("days", 7, "Show the last N days")
		cmd.Parse(args)
		return application.Usage(ctx, *days)

	case "metrics-cleanup":
		cmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cmd.Int("days", 30, "Keep records for the last N days")
		cmd.Parse(args)
		return application.CleanupMetrics(ctx, *days)

	case "status":
		application.Status()
		return nil
	}
	return nil
}

func runInquiry(ctx context.Context, application *app.App, args []string) error {
	if len(args) == 0 {
		return errors.New("expected 'submit' or 'list'")
	}

	switch args[0] {
	case "list":
		return application.ListInquiries(ctx)
	case "submit":
		defaults := inquiry.Default()
		cmd := flag.NewFlagSet("inquiry submit", flag.ExitOnError)
		name := cmd.String("name", "", "Full name")
		phone := cmd.String("phone", "", "Phone number")
		email := cmd.String("email", "", "Email address")
		goal := cmd.String("goal", defaults.Goal, "Goal: "+strings.Join(inquiry.Goals, ", "))
		branch := cmd.String("branch", "", "Preferred branch: "+strings.Join(inquiry.Branches, ", "))
		membership := cmd.String("membership", defaults.Membership, "Membership: "+strings.Join(inquiry.Memberships, ", "))
		bestTime := cmd.String("time", defaults.BestTime, "Best time to reach you: "+strings.Join(inquiry.BestTimes, ", "))
		message := cmd.String("message", "", "Optional message")
		consent := cmd.Bool("consent", defaults.Consent, "Agree to be contacted")
		cmd.Parse(args[1:])

		return application.SubmitInquiry(ctx, inquiry.Inquiry{
			FullName:        *name,
			Phone:           *phone,
			Email:           *email,
			Goal:            *goal,
			PreferredBranch: *branch,
			Membership:      *membership,
			BestTime:        *bestTime,
			Message:         *message,
			Consent:         *consent,
		})
	}
	return fmt.Errorf("unknown inquiry command: %s", args[0])
}

func printUsage() {
	fmt.Println("Usage: ai-trainer <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate           Generate a workout and diet plan (--goal, --level, --cuisine, --time, --age, --weight, --gender, --tab)")
	fmt.Println("  show               Print the saved plan (--tab workout|diet|all)")
	fmt.Println("  clear              Delete the saved plan")
	fmt.Println("  inquiry submit     Send a membership inquiry (--name, --phone, --email, ...)")
	fmt.Println("  inquiry list       List saved inquiries, newest first")
	fmt.Println("  usage              Show LLM token usage (--days)")
	fmt.Println("  metrics-cleanup    Remove old metric records (--days)")
	fmt.Println("  status             Show configuration and system health")
}
