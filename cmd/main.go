package cmd

import (
	"github.com/google/subcommands"
)

// group is a set of commands listed together in the help.
type group struct {
	name     string
	commands []subcommands.Command
}

func groups() []group {
	return []group{
		{"records", []subcommands.Command{&addCmd{}, &showCmd{}, &slurpCmd{}}},
		{"plans", []subcommands.Command{&planCmd{}, &futureCmd{}, &overviewCmd{}}},
		{"book", []subcommands.Command{&sheetCmd{}, &configCmd{}, &queryCmd{}}},
		{"help", []subcommands.Command{&topicCmd{}, &versionCmd{}}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups() {
		for _, command := range g.commands {
			c.Register(command, g.name)
		}
	}
}

// Commands returns every fintrack command.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups() {
		all = append(all, g.commands...)
	}
	return all
}
