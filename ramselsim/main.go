// Command ramselsim runs scenarios against a RAM with chip-select.
package main

import "github.com/sarchlab/digisim/ramselsim/cmd"

func main() {
	cmd.Execute()
}
