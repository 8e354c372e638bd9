package main

import "github.com/anu-001/netflix-marketing-analytics/cmd"

func main() {
	cmd.Execute()
}
