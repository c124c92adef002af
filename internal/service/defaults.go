package service

import (
	"slices"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// DefaultPayload returns the starter content shown in the editor for a module
// that has none saved yet. The result is freshly built on every call and is
// never persisted here. Unknown types yield nil.
func DefaultPayload(t domain.ContentType) domain.Payload {
	switch t {
	case domain.ContentCBTThoughtRecords:
		return &domain.CBTPayload{Steps: []domain.CBTStep{
			{ID: "situation", Order: 1, Title: "Situation", Prompt: "What happened? Where were you and who were you with?", Placeholder: "Describe the situation briefly..."},
			{ID: "thoughts", Order: 2, Title: "Automatic Thoughts", Prompt: "What went through your mind?", Placeholder: "I thought that..."},
			{ID: "emotions", Order: 3, Title: "Emotions", Prompt: "What did you feel, and how strongly (0-100%)?", Placeholder: "Anxious 80%..."},
			{ID: "evidence-for", Order: 4, Title: "Evidence For", Prompt: "What facts support the thought?", Placeholder: "The evidence that supports this is..."},
			{ID: "evidence-against", Order: 5, Title: "Evidence Against", Prompt: "What facts do not support the thought?", Placeholder: "The evidence against this is..."},
			{ID: "balanced-thought", Order: 6, Title: "Balanced Thought", Prompt: "What is a more balanced way to see this?", Placeholder: "A more balanced view is..."},
		}}
	case domain.ContentMindfulnessBreathing:
		return &domain.BreathingPayload{
			Patterns: []domain.BreathingPattern{
				{ID: "box", Name: "Box Breathing", Inhale: 4, Hold: 4, Exhale: 4, HoldAfter: 4, Cycles: 4, Description: "Equal counts to steady the nervous system."},
				{ID: "4-7-8", Name: "4-7-8 Breathing", Inhale: 4, Hold: 7, Exhale: 8, HoldAfter: 0, Cycles: 4, Description: "A long exhale that helps with falling asleep."},
			},
			Exercises: []domain.MindfulnessExercise{
				{ID: "grounding", Title: "5-4-3-2-1 Grounding", Duration: "5 min", Instructions: []string{
					"Name five things you can see.",
					"Name four things you can touch.",
					"Name three things you can hear.",
					"Name two things you can smell.",
					"Name one thing you can taste.",
				}},
			},
		}
	case domain.ContentMusicTherapy:
		return &domain.MusicPayload{
			Tracks:         []domain.AudioTrack{},
			MoodCategories: []string{"Calm", "Focus", "Uplift", "Sleep", "Energy"},
		}
	case domain.ContentGuidedMeditation:
		return &domain.MeditationPayload{Sessions: []domain.MeditationSession{
			{ID: "body-scan", Title: "Body Scan", Minutes: 10, Script: "Bring your attention to your feet and slowly move upward, noticing each area without judgment."},
			{ID: "loving-kindness", Title: "Loving-Kindness", Minutes: 8, Script: "Silently repeat: may I be safe, may I be well, may I be at ease."},
		}}
	case domain.ContentJournaling:
		return &domain.JournalingPayload{Prompts: []domain.JournalPrompt{
			{ID: "today", Order: 1, Prompt: "What stood out about today?"},
			{ID: "feeling", Order: 2, Prompt: "How are you feeling right now, and why?"},
			{ID: "tomorrow", Order: 3, Prompt: "What is one thing you want to carry into tomorrow?"},
		}}
	case domain.ContentGratitudePractice:
		return &domain.GratitudePayload{
			Prompts: []string{
				"Something that made you smile today",
				"A person you are thankful for",
				"A small comfort you often overlook",
			},
			DailyGoal: 3,
		}
	case domain.ContentSleepHygiene:
		return &domain.SleepPayload{
			Tips: []domain.SleepTip{
				{ID: "schedule", Title: "Keep a consistent schedule", Body: "Go to bed and wake up at the same time every day.", Category: "routine"},
				{ID: "screens", Title: "Dim the screens", Body: "Put devices away at least 30 minutes before bed.", Category: "environment"},
				{ID: "caffeine", Title: "Watch the caffeine", Body: "Avoid caffeine after early afternoon.", Category: "habits"},
			},
			WindDownMinutes: 30,
		}
	case domain.ContentMoodTracking:
		return &domain.MoodTrackingPayload{
			Moods: []domain.MoodOption{
				{Value: 1, Label: "Very low", Emoji: "😞"},
				{Value: 2, Label: "Low", Emoji: "🙁"},
				{Value: 3, Label: "Okay", Emoji: "😐"},
				{Value: 4, Label: "Good", Emoji: "🙂"},
				{Value: 5, Label: "Great", Emoji: "😄"},
			},
			Factors: []string{"Sleep", "Exercise", "Work", "Social", "Weather"},
		}
	case domain.ContentBehavioralActivation:
		return &domain.ActivationPayload{Activities: []domain.Activity{
			{ID: "walk", Title: "Take a 10 minute walk", Category: "pleasure", Effort: 2},
			{ID: "call", Title: "Call a friend", Category: "pleasure", Effort: 2},
			{ID: "tidy", Title: "Tidy one small area", Category: "mastery", Effort: 3},
		}}
	case domain.ContentAffirmations:
		return &domain.AffirmationsPayload{Affirmations: []domain.Affirmation{
			{ID: "enough", Text: "I am doing the best I can, and that is enough.", Category: "self-worth"},
			{ID: "feelings", Text: "My feelings are valid and they will pass.", Category: "emotions"},
			{ID: "progress", Text: "Small steps still move me forward.", Category: "growth"},
		}}
	}
	return nil
}

// ContentTypes lists every content type tag in display order.
func ContentTypes() []domain.ContentType {
	return slices.Clone(domain.ContentTypes)
}
