package main

import "github.com/pharmaguide/pharmaguide-backend/cmd/api/commands"

func main() {
	commands.Execute()
}
