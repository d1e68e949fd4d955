package textproc

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  hello \n world\t\tagain  ")
	if got != "hello world again" {
		t.Errorf("Normalize = %q", got)
	}
}

func TestTruncateWords_UnderLimit(t *testing.T) {
	text := "one two three"
	if got := TruncateWords(text, 5); got != text {
		t.Errorf("TruncateWords = %q, want unchanged", got)
	}
}

func TestTruncateWords_OverLimit(t *testing.T) {
	got := TruncateWords("one two three four five", 3)
	if got != "one two three..." {
		t.Errorf("TruncateWords = %q", got)
	}
}

func TestExtractKeywords_FrequencyOrder(t *testing.T) {
	text := "neural networks learn. neural networks generalize. data helps."
	got := ExtractKeywords(text, 3)
	want := []string{"neural", "networks", "learn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywords_DropsStopwords(t *testing.T) {
	got := ExtractKeywords("the the the and model model", 2)
	want := []string{"model"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one! Third? trailing text")
	want := []string{"First sentence.", "Second one!", "Third?", "trailing text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %v, want %v", got, want)
	}
}

func TestSplitSentences_NoMidWordSplit(t *testing.T) {
	got := SplitSentences("Version 2.5 shipped today.")
	if len(got) != 1 {
		t.Errorf("SplitSentences = %v, want one sentence", got)
	}
}
