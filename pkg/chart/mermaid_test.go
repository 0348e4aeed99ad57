package chart

import (
	"reflect"
	"testing"

	"github.com/matzehuels/piechart/pkg/core/pie"
	"github.com/matzehuels/piechart/pkg/errors"
)

func TestReadMermaid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Dataset
	}{
		{
			name: "full",
			input: `pie showData
    title Key elements in Product X
    %% values from the lab report
    "Calcium" : 42.96
    "Potassium" : 50.05
    "Magnesium" : 10.01
    "Iron" :  5
`,
			want: Dataset{
				Title: "Key elements in Product X",
				Entries: []pie.Entry{
					{Name: "Calcium", Value: 42.96},
					{Name: "Potassium", Value: 50.05},
					{Name: "Magnesium", Value: 10.01},
					{Name: "Iron", Value: 5},
				},
			},
		},
		{
			name:  "no title",
			input: "pie\n\"Dogs\" : 386\n\"Cats\" : 85.9\n",
			want: Dataset{Entries: []pie.Entry{
				{Name: "Dogs", Value: 386},
				{Name: "Cats", Value: 85.9},
			}},
		},
		{
			name:  "upper case keywords",
			input: "PIE\nTITLE Pets\n\"Rats\" : .5\n",
			want:  Dataset{Title: "Pets", Entries: []pie.Entry{{Name: "Rats", Value: 0.5}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDataset([]byte(tt.input), FormatMermaid)
			if err != nil {
				t.Fatalf("ParseDataset: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestReadMermaidErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing header", `"Dogs" : 3`},
		{"missing colon", "pie\n\"Dogs\" 3\n"},
		{"missing value", "pie\n\"Dogs\" :\n"},
		{"bare label", "pie\nDogs : 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDataset([]byte(tt.input), FormatMermaid); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestMarshalMermaidRoundTrip(t *testing.T) {
	ds := Dataset{Title: "Pets", Entries: []pie.Entry{{Name: "Dogs", Value: 386}, {Name: "Cats", Value: 85.5}}}
	got, err := ParseDataset(MarshalMermaid(ds), FormatMermaid)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Errorf("got %+v, want %+v", got, ds)
	}
}
