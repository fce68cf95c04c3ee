package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is a menu entry.
type Command int

// Menu commands, numbered as typed by the user.
const (
	CommandExit Command = iota
	CommandKeyboard
	CommandFile
)

var menuOrder = []Command{CommandKeyboard, CommandFile, CommandExit}

func (c Command) String() string {
	switch c {
	case CommandKeyboard:
		return "Decipher text from keyboard"
	case CommandFile:
		return "Decipher text from file"
	case CommandExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// ParseCommand reads a menu number.
func ParseCommand(input string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("please input an integer")
	}
	c := Command(n)
	switch c {
	case CommandExit, CommandKeyboard, CommandFile:
		return c, nil
	default:
		return 0, fmt.Errorf("invalid command %d", n)
	}
}
