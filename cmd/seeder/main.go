package main

import (
	"flag"
	"fmt"
	"os"
)

var subjects = []string{"math", "databases", "algorithms", "networks", "economics"}

var statuses = []string{"not_started", "in_progress", "completed", "blocked"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "tasks":
		tasksCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Taskboard Seeder - Development tool for populating the API with demo data

USAGE:
  seeder <command> [options]

COMMANDS:
  seed   Create demo accounts, each with a handful of tasks
  tasks  Add tasks to an existing account
  help   Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Create 5 demo accounts with 4 tasks each
  seeder seed

  # Create 10 demo accounts with 8 tasks each
  seeder seed --users=10 --tasks=8

  # Add 6 tasks to an existing account
  seeder tasks --email=demo@example.com --password=secret --count=6`)
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	users := fs.Int("users", 5, "Number of demo accounts to create")
	tasks := fs.Int("tasks", 4, "Number of tasks per account")
	fs.Parse(args)

	if *users < 1 || *tasks < 0 {
		fmt.Println("Error: --users must be at least 1 and --tasks must not be negative")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Taskboard Seeder ===")
	fmt.Println()

	var lastSession string
	for i := 0; i < *users; i++ {
		fmt.Printf("Creating account %d/%d... ", i+1, *users)
		user, password, err := client.RegisterUser("demo")
		if err != nil {
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}

		session, err := client.Login(user.Email, password)
		if err != nil {
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK (user: %s)\n", user.Username)

		if err := createTasks(client, session, *tasks, i); err != nil {
			fmt.Printf("  Warning: %v\n", err)
		}
		lastSession = session
	}

	// One listing call so the cache is warm when someone opens the app.
	if lastSession != "" {
		total, err := client.ListUsers(lastSession)
		if err != nil {
			fmt.Printf("Warning: failed to list users: %v\n", err)
		} else {
			fmt.Printf("\nDone. %d accounts visible in the user listing.\n", total)
		}
	}
}

func tasksCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("tasks", flag.ExitOnError)
	email := fs.String("email", "", "Email of the account to log in as")
	password := fs.String("password", "", "Password of the account")
	count := fs.Int("count", 4, "Number of tasks to create")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: --email and --password are required")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	session, err := client.Login(*email, *password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	if err := createTasks(client, session, *count, 0); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tasks, err := client.ListTasks(session)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done. Account now has %d tasks.\n", len(tasks))

	if err := client.Logout(session); err != nil {
		fmt.Printf("Warning: logout failed: %v\n", err)
	}
}

func createTasks(client *APIClient, session string, count, seed int) error {
	for i := 0; i < count; i++ {
		subject := subjects[(seed+i)%len(subjects)]
		status := statuses[(seed+i)%len(statuses)]
		priority := ((seed + i) % 5) + 1

		title := fmt.Sprintf("%s assignment %d", subject, i+1)
		if _, err := client.CreateTask(session, title, subject, status, priority); err != nil {
			return fmt.Errorf("create task %d failed: %w", i+1, err)
		}
	}
	return nil
}
