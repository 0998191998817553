package event

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"scroll.update", "scroll.update", true},
		{"scroll.update", "scroll.optimize", false},
		{"scroll.update", "scroll.*", true},
		{"scroll.update.done", "scroll.*", false},
		{"scroll.update.done", "scroll.**", true},
		{"scroll", "scroll.**", true},
		{"scroll.update", "*.update", true},
		{"mirror.apply", "**", true},
		{"scroll.update", "**.update", true},
		{"scroll.update", "scroll", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, expected %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"scroll.update", true},
		{"scroll", true},
		{"", false},
		{".scroll", false},
		{"scroll.", false},
		{"scroll..update", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, expected %v", tt.topic, got, tt.want)
		}
	}
}
