package textmatch

import "testing"

func TestScore_Identical(t *testing.T) {
	if got := Score("홍길동", "홍길동"); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestScore_OneEditClearsThreshold(t *testing.T) {
	// A single-character typo in a three-character name must still be
	// accepted by the search fallback.
	if got := Score("홍길둥", "홍길동"); got < AcceptThreshold {
		t.Errorf("expected score >= %d, got %d", AcceptThreshold, got)
	}
}

func TestScore_UnrelatedBelowThreshold(t *testing.T) {
	if got := Score("완전다른이름", "홍길동"); got >= AcceptThreshold {
		t.Errorf("expected score < %d, got %d", AcceptThreshold, got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	if got := Score("KIM CHULSOO", "kim chulsoo"); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
}

func TestBestMatch_PicksHighest(t *testing.T) {
	match, score, ok := BestMatch("홍길둥", []string{"김철수", "홍길동", "이영희"})
	if !ok {
		t.Fatal("expected a match")
	}
	if match != "홍길동" {
		t.Errorf("expected 홍길동, got %q", match)
	}
	if score < AcceptThreshold {
		t.Errorf("expected score >= %d, got %d", AcceptThreshold, score)
	}
}

func TestBestMatch_FirstSeenWinsTies(t *testing.T) {
	match, _, ok := BestMatch("홍길동", []string{"홍길동", "홍길동"})
	if !ok || match != "홍길동" {
		t.Fatalf("expected the first candidate, got %q (ok=%v)", match, ok)
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	if _, _, ok := BestMatch("홍길동", nil); ok {
		t.Error("expected no match for empty candidates")
	}
}
