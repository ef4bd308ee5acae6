package wikitext_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fanlore-dev/fanlore/pkg/utils/wikitext"
)

func TestExtractCategories(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two categories",
			text: "[[Category:Science]] text [[Category:Fiction]]",
			want: []string{"Science", "Fiction"},
		},
		{
			name: "no categories",
			text: "plain text with a [[Regular Link]]",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "category among links",
			text: "He visited [[Hobbiton]].\n[[Category:Characters]]",
			want: []string{"Characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wikitext.ExtractCategories(tt.text)
			gt.A(t, got).Length(len(tt.want))
			for i, w := range tt.want {
				gt.V(t, got[i]).Equal(w)
			}
		})
	}
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain link",
			text: "He went to [[Hobbiton]].",
			want: []string{"Hobbiton"},
		},
		{
			name: "piped alias",
			text: "He met [[Gandalf|the wizard]].",
			want: []string{"Gandalf"},
		},
		{
			name: "fragment",
			text: "See [[Gandalf#History]] for details.",
			want: []string{"Gandalf"},
		},
		{
			name: "piped alias with fragment",
			text: "See [[Gandalf#History|his history]].",
			want: []string{"Gandalf"},
		},
		{
			name: "multiple links keep order",
			text: "[[A]] then [[B]] then [[A]]",
			want: []string{"A", "B", "A"},
		},
		{
			name: "category link is also a link",
			text: "[[Category:Places]]",
			want: []string{"Category:Places"},
		},
		{
			name: "surrounding whitespace trimmed",
			text: "[[ Hobbiton ]]",
			want: []string{"Hobbiton"},
		},
		{
			name: "no links",
			text: "nothing here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wikitext.ExtractLinks(tt.text)
			gt.A(t, got).Length(len(tt.want))
			for i, w := range tt.want {
				gt.V(t, got[i]).Equal(w)
			}
		})
	}
}

func TestSentencesWithKeyword(t *testing.T) {
	text := "Gandalf is a wizard. He lives nowhere in particular. Hobbiton is a village. The wizard visited Hobbiton often! Nothing else matters."

	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{
			name:    "single match",
			keyword: "village",
			want:    "Hobbiton is a village.",
		},
		{
			name:    "multiple matches joined",
			keyword: "Hobbiton",
			want:    "Hobbiton is a village. The wizard visited Hobbiton often!",
		},
		{
			name:    "case insensitive",
			keyword: "gandalf",
			want:    "Gandalf is a wizard.",
		},
		{
			name:    "no match yields empty",
			keyword: "Mordor",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, wikitext.SentencesWithKeyword(text, tt.keyword)).Equal(tt.want)
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := wikitext.SplitSentences("One. Two! Three? Four")
	gt.A(t, got).Length(4)
	gt.V(t, got[0]).Equal("One.")
	gt.V(t, got[1]).Equal("Two!")
	gt.V(t, got[2]).Equal("Three?")
	gt.V(t, got[3]).Equal("Four")
}
