package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/acaizen/posapi/internal/config"
	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: go run cmd/create-employee/main.go <name> <username> <password> <role>")
		fmt.Println("Example: go run cmd/create-employee/main.go \"Maria Silva\" maria s3cret cashier")
		os.Exit(1)
	}

	name := os.Args[1]
	username := os.Args[2]
	password := os.Args[3]
	role := os.Args[4]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	// Create employee
	employee := &domain.Employee{
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	err = repos.Employee.Create(context.Background(), employee)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create employee: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Employee created successfully!\n\n")
	fmt.Printf("Employee ID: %s\n", employee.ID.String())
	fmt.Printf("Name: %s\n", employee.Name)
	fmt.Printf("Username: %s\n", employee.Username)
	fmt.Printf("Role: %s\n", employee.Role)
}
