/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/samwightt/gqlvet/cmd"

func main() {
	cmd.Execute()
}
