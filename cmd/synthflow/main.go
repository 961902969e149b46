package main

import "github.com/dbsmedya/synthflow/cmd/synthflow/cmd"

func main() {
	cmd.Execute()
}
