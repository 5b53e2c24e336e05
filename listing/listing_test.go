package listing

import (
	"strings"
	"testing"

	"github.com/go-test/deep"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *Listing
		wantErr bool
	}{
		{
			name: "simple",
			in: `; Count X up forever
0600 A2 00	START	LDX #$00
0602 E8		LOOP	INX
0603 D0 FD		BNE LOOP
0605 4C 00 06 (*)	JMP START
`,
			want: &Listing{
				Origin: 0x0600,
				Image:  []uint8{0xA2, 0x00, 0xE8, 0xD0, 0xFD, 0x4C, 0x00, 0x06},
			},
		},
		{
			name: "gap and label",
			in: `0600 EA
0601	LABEL
0604 00
`,
			want: &Listing{
				Origin: 0x0600,
				Image:  []uint8{0xEA, 0x00, 0x00, 0x00, 0x00},
			},
		},
		{
			name: "ends at top",
			in:   "FFFC 00 06\nFFFE 00 07\n",
			want: &Listing{
				Origin: 0xFFFC,
				Image:  []uint8{0x00, 0x06, 0x00, 0x07},
			},
		},
		{
			name:    "too many bytes",
			in:      "0600 EA EA EA EA\n",
			wantErr: true,
		},
		{
			name:    "bad byte",
			in:      "0600 A9 4G\n",
			wantErr: true,
		},
		{
			name:    "overlap",
			in:      "0600 A9 00\n0601 EA\n",
			wantErr: true,
		},
		{
			name:    "past top",
			in:      "FFFF 4C 00 06\n",
			wantErr: true,
		},
		{
			name:    "nothing",
			in:      "just text\n",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.in))
			if test.wantErr {
				if _, ok := err.(ParseError); !ok {
					t.Fatalf("Didn't get ParseError. Got %T - %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed - %v", err)
			}
			if diff := deep.Equal(got, test.want); diff != nil {
				t.Errorf("Wrong listing: %v", diff)
			}
		})
	}
}
