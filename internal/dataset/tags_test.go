package dataset

import "testing"

func TestNormalizeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`funny`, "funny", true},
		{`"funny"`, "funny", true},
		{`  funny  `, "funny", true},
		{`'funny'`, "funny", true},
		{` "  funny " `, "funny", true},
		{``, "", false},
		{`""`, "", false},
		{`none`, "", false},
		{`NONE`, "", false},
		{`[none]`, "", false},
		{`  `, "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeTag(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("NormalizeTag(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseTagsPipeDelimited(t *testing.T) {
	tags := ParseTags(`funny|"funny"|  music  |none|`)
	want := []string{"funny", "music"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestParseTagsBracketedList(t *testing.T) {
	tags := ParseTags(`['funny', "music", 'rock, classic', 'none']`)
	want := []string{"funny", "music", "rock, classic"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestParseTagsSentinels(t *testing.T) {
	for _, in := range []string{"", "[]", "[none]", "[NONE]"} {
		if tags := ParseTags(in); len(tags) != 0 {
			t.Fatalf("ParseTags(%q) = %v, want empty", in, tags)
		}
	}
}

func TestParseTagsDeduplicates(t *testing.T) {
	tags := ParseTags(`funny|"funny"|  funny  `)
	if len(tags) != 1 || tags[0] != "funny" {
		t.Fatalf("expected single normalized tag, got %v", tags)
	}
}
