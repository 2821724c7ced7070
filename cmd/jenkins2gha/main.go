package main

import (
	"github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/commands"
	_ "github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/commands/convert"
	_ "github.com/buildbeaver/jenkins2gha/cmd/jenkins2gha/commands/fetch"
)

func main() {
	commands.Execute()
}
