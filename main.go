// main.go
package main

import "github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/cmd"

func main() {
	cmd.Execute()
}
