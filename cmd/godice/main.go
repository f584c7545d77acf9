package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/godice"
	"github.com/muesli/termenv"
)

func roll(rl godice.Roller, src string, verbose bool) (string, error) {
	expr, err := godice.Compile(src)
	if err != nil {
		return "", err
	}
	res, err := expr.Eval(rl)
	if err != nil {
		return "", err
	}
	if verbose {
		return res.Render(), nil
	}
	return res.Text(), nil
}

func repl(rl godice.Roller, verbose bool) {
	out := termenv.NewOutput(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s, err := roll(rl, line, verbose)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if verbose {
			fmt.Println(s)
		} else {
			fmt.Println(out.String(s).Bold())
		}
	}
}

func main() {
	verbose := flag.Bool("v", false, "print the full roll trace")
	seed := flag.Int64("seed", 0, "random seed; 0 draws one from crypto/rand")
	flag.Parse()

	if *seed == 0 {
		s, err := godice.NewSeed()
		if err != nil {
			log.Fatal(err)
		}
		*seed = s
	}
	rl := godice.NewRoller(*seed)

	if flag.NArg() > 0 {
		s, err := roll(rl, strings.Join(flag.Args(), " "), *verbose)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s)
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		repl(rl, *verbose)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s, err := roll(rl, line, *verbose)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s)
	}
}
