/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/iptecharch/ofc-server/client/cmd"

func main() {
	cmd.Execute()
}
