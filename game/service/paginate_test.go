package service

import (
	"testing"

	"github.com/wricardo/path-of-faith/game/engine"
)

func records(n int) []engine.TurnRecord {
	out := make([]engine.TurnRecord, n)
	for i := range out {
		out[i] = engine.TurnRecord{Seq: i + 1}
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		opts      HistoryOptions
		wantSeqs  []int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty", 0, HistoryOptions{}, nil, 1, false, false},
		{"defaults newest first", 3, HistoryOptions{}, []int{3, 2, 1}, 1, false, false},
		{"asc first page", 5, HistoryOptions{Page: 1, Limit: 2, Order: "asc"}, []int{1, 2}, 3, true, false},
		{"asc last page", 5, HistoryOptions{Page: 3, Limit: 2, Order: "asc"}, []int{5}, 3, false, true},
		{"desc middle page", 5, HistoryOptions{Page: 2, Limit: 2, Order: "desc"}, []int{3, 2}, 3, true, true},
		{"desc last page", 5, HistoryOptions{Page: 3, Limit: 2}, []int{1}, 3, false, true},
		{"past the end", 5, HistoryOptions{Page: 9, Limit: 2}, nil, 3, false, true},
		{"limit capped", 150, HistoryOptions{Limit: 500, Order: "asc"}, nil, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := paginate(records(tt.total), tt.opts)
			if tt.wantSeqs != nil {
				if len(resp.Turns) != len(tt.wantSeqs) {
					t.Fatalf("Expected %d turns, got %d", len(tt.wantSeqs), len(resp.Turns))
				}
				for i, seq := range tt.wantSeqs {
					if resp.Turns[i].Seq != seq {
						t.Errorf("Turn %d: expected seq %d, got %d", i, seq, resp.Turns[i].Seq)
					}
				}
			} else if tt.name != "limit capped" && len(resp.Turns) != 0 {
				t.Errorf("Expected no turns, got %d", len(resp.Turns))
			}
			if resp.Turns == nil {
				t.Error("Turns must never be nil")
			}
			if resp.TotalPages != tt.wantPages {
				t.Errorf("Expected %d pages, got %d", tt.wantPages, resp.TotalPages)
			}
			if resp.HasNext != tt.wantNext || resp.HasPrevious != tt.wantPrev {
				t.Errorf("Expected next=%v prev=%v, got next=%v prev=%v", tt.wantNext, tt.wantPrev, resp.HasNext, resp.HasPrevious)
			}
			if resp.TotalTurns != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, resp.TotalTurns)
			}
		})
	}
}
