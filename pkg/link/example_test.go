package link_test

import (
	"fmt"

	"github.com/matzehuels/passages/pkg/link"
)

func ExampleLinks() {
	text := "You can [[go north->North Road]], [[Cellar<-climb down]] or [[read the sign|Sign]].\n" +
		"More at [[https://example.org]]. Or just [[North Road]] again."

	fmt.Println(link.Links(text, false))
	fmt.Println(link.Links(text, true))
	// Output:
	// [North Road Cellar Sign https://example.org]
	// [North Road Cellar Sign]
}

func ExampleReplace() {
	text := "[[go north->North Road][$steps to 1]] or [[North Road]]"

	out, changed := link.Replace(text, "North Road", "Old Highway")
	fmt.Println(out)
	fmt.Println(changed)
	// Output:
	// [[go north->Old Highway][$steps to 1]] or [[Old Highway]]
	// true
}

func ExampleParse() {
	for _, tok := range link.Parse("[[Cellar<-climb down]] [[Sign]]") {
		fmt.Printf("%s %q -> %q\n", tok.Form, tok.Display, tok.Target)
	}
	// Output:
	// arrow-left "climb down" -> "Cellar"
	// bare "Sign" -> "Sign"
}
