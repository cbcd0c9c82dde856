/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import (
	"github.com/jeremy159/ab-helpers/cmd"
)

func main() {
	cmd.Execute()
}
