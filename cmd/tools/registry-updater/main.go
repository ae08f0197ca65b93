package main

import (
	"flag"
	"fmt"
	"os"

	"premium-estimator/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	addPath := addCmd.String("path", defaultRegistryPath, "Path to registry file")
	idAdd := addCmd.String("id", "", "Activity ID (e.g., record-quote)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Record Quote)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., estimation)")
	taskType := addCmd.String("taskType", "", "Zeebe task type (e.g., record-quote)")
	version := addCmd.String("version", "1.0.0", "Version")
	timeout := addCmd.String("timeout", "10s", "Job timeout")
	implStatus := addCmd.String("status", registry.StatusPlanned, "Implementation Status (planned, in-progress, completed, verified)")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, ...)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		_ = addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" || *taskType == "" {
			fmt.Println("Error: id, displayName, description, category, and taskType are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		reg, err := loadOrCreate(*addPath)
		exitOnError("loading registry", err)

		exitOnError("adding activity", reg.Add(registry.Activity{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *implStatus,
			InputVariables:       []string{},
			OutputVariables:      []string{},
			ErrorCodes:           []string{},
			Timeout:              *timeout,
			Tags:                 []string{},
		}))
		exitOnError("saving registry", reg.Save(*addPath))
		fmt.Printf("Added activity: %s\n", *idAdd)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		reg, err := registry.LoadRegistry(*updatePath)
		exitOnError("loading registry", err)
		exitOnError("updating activity", reg.Update(*idUpdate, *field, *value))
		exitOnError("saving registry", reg.Save(*updatePath))
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*validatePath)
		exitOnError("loading registry", err)
		exitOnError("registry validation failed", reg.Validate())
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))

	default:
		help()
	}
}

func loadOrCreate(path string) (*registry.ActivityRegistry, error) {
	reg, err := registry.LoadRegistry(path)
	if os.IsNotExist(err) {
		return &registry.ActivityRegistry{Version: "1.0.0", Activities: []registry.Activity{}}, nil
	}
	return reg, err
}

func exitOnError(action string, err error) {
	if err != nil {
		fmt.Printf("Error %s: %v\n", action, err)
		os.Exit(1)
	}
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  help     Show this help message

Examples:
  registry-updater add -id record-quote -displayName "Record Quote" -description "Stores the quote outcome" -category estimation -taskType record-quote
  registry-updater update -id record-quote -field status -value completed
  registry-updater validate -path configs/activity-registry.json

Use 'registry-updater <command> -h' for more information about a command.`)
}
