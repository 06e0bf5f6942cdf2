package main

import (
	"flag"
	"io"
	"testing"
)

func TestParseInterleaved(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		output string
		sheet  string
		want   []string
	}{
		{name: "flags first", args: []string{"-o", "x.db", "in.xlsx"}, output: "x.db", want: []string{"in.xlsx"}},
		{name: "flags after file", args: []string{"in.xlsx", "--output", "y.db", "--sheet=S"}, output: "y.db", sheet: "S", want: []string{"in.xlsx"}},
		{name: "defaults", args: []string{"in.xlsx"}, output: "data/servers.db", want: []string{"in.xlsx"}},
		{name: "extra positional", args: []string{"a.xlsx", "b.xlsx"}, output: "data/servers.db", want: []string{"a.xlsx", "b.xlsx"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("convert", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			output := fs.String("output", "data/servers.db", "")
			fs.StringVar(output, "o", "data/servers.db", "")
			sheet := fs.String("sheet", "", "")

			got := parseInterleaved(fs, tc.args)
			if *output != tc.output || *sheet != tc.sheet {
				t.Fatalf("output=%q sheet=%q", *output, *sheet)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("positional=%v", got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("positional=%v", got)
				}
			}
		})
	}
}

func TestFmtPrice(t *testing.T) {
	v := 49.99
	if fmtPrice(&v) != "49.99" || fmtPrice(nil) != "-" {
		t.Fatalf("fmtPrice")
	}
}
