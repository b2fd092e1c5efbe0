// Package grammar has small helpers for writing counts into English
// sentences.
package grammar

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var smallNumbers = map[int]string{
	1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine", 10: "ten",
}

// Andify joins things with commas and a final "and", using the serial comma
// for three or more items.
func Andify(things []string) string {
	switch len(things) {
	case 0:
		return ""
	case 1:
		return things[0]
	case 2:
		return things[0] + " and " + things[1]
	}
	return strings.Join(things[:len(things)-1], ", ") + ", and " + things[len(things)-1]
}

// Copula returns "is" for a count of one and "are" otherwise.
func Copula(count int) string {
	if count == 1 {
		return "is"
	}
	return "are"
}

// AddS pluralizes word by adding an s unless count is one.
func AddS(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// Num spells out one through ten and formats everything else with
// thousands separators.
func Num(n int) string {
	if s, ok := smallNumbers[n]; ok {
		return s
	}
	return printer.Sprintf("%d", n)
}
