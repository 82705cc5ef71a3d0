package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pontem-network/flashloan-loadgen/app"
	"github.com/pontem-network/flashloan-loadgen/config"
)

// command holds the state shared by all subcommands
type command struct {
	config app.Config
	parser *config.Parser
}

// setup parses the configuration and builds the application
func (c *command) setup() (*app.App, error) {
	if err := c.parser.Parse(); err != nil {
		return nil, err
	}

	return app.New(&c.config)
}

func printJSON(v interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Println("failed to serialize result to json: ", err)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Println("ERROR: ", err)
		os.Exit(1)
	}
}

func main() {
	var c command
	var rootCmd = &cobra.Command{
		Use:   c.config.Use(),
		Short: "load generator for the flashloan test module",
	}

	parser, err := config.Generate(rootCmd, &c.config)
	if err != nil {
		fmt.Println("failed to generate configuration: ", err.Error())
		os.Exit(1)
	}
	c.parser = parser

	bindRegisterPool(rootCmd, &c)
	bindExecute(rootCmd, &c)
	bindRun(rootCmd, &c)
	bindFund(rootCmd, &c)
	bindBalance(rootCmd, &c)
	bindInfo(rootCmd, &c)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("failed to parse command line arguments ", err.Error())
		os.Exit(1)
	}
}
