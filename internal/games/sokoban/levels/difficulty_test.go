package levels_test

import (
	"testing"

	"github.com/vovakirdan/sbokena/internal/games/sokoban/levels"
)

func TestPresetFilter(t *testing.T) {
	lvls := []levels.Level{
		{ID: "u", Difficulty: levels.Unknown},
		{ID: "e", Difficulty: levels.Easy},
		{ID: "m", Difficulty: levels.Medium},
		{ID: "h", Difficulty: levels.Hard},
	}

	tests := []struct {
		preset string
		want   []string
	}{
		{"easy", []string{"u", "e"}},
		{"medium", []string{"u", "e", "m"}},
		{"hard", []string{"u", "e", "m", "h"}},
		{"all", []string{"u", "e", "m", "h"}},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			ceiling, err := levels.PresetCeiling(tt.preset)
			if err != nil {
				t.Fatalf("PresetCeiling failed: %v", err)
			}
			got := levels.Filter(lvls, ceiling)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d levels, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("level %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}

	if _, err := levels.PresetCeiling("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := levels.PresetCeiling("unknown"); err == nil {
		t.Error("unknown is not a preset")
	}
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]levels.Difficulty{
		"":       levels.Unknown,
		"Easy":   levels.Easy,
		"medium": levels.Medium,
		" HARD ": levels.Hard,
	} {
		got, err := levels.ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := levels.ParseDifficulty("extreme"); err == nil {
		t.Error("expected error")
	}
}
