package domain

// CBTStep is one prompt in a thought-record worksheet. Order is 1-based and
// dense across the list.
type CBTStep struct {
	ID          string `json:"id"`
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Placeholder string `json:"placeholder"`
}

func (s CBTStep) Key() string         { return s.ID }
func (s *CBTStep) SetOrder(order int) { s.Order = order }

type CBTPayload struct {
	Steps []CBTStep `json:"steps"`
}

type BreathingPattern struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Inhale      int    `json:"inhale"` // seconds
	Hold        int    `json:"hold"`
	Exhale      int    `json:"exhale"`
	HoldAfter   int    `json:"holdAfter"`
	Cycles      int    `json:"cycles"`
	Description string `json:"description"`
}

type MindfulnessExercise struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Instructions []string `json:"instructions"`
	Duration     string   `json:"duration"`
}

type BreathingPayload struct {
	Patterns  []BreathingPattern    `json:"patterns"`
	Exercises []MindfulnessExercise `json:"exercises"`
}

type AudioTrack struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
	Mood     string `json:"mood"`
}

type MusicPayload struct {
	Tracks         []AudioTrack `json:"tracks"`
	MoodCategories []string     `json:"moodCategories"`
}

type MeditationSession struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Script   string `json:"script"`
	AudioURL string `json:"audioUrl"`
	Minutes  int    `json:"minutes"`
}

type MeditationPayload struct {
	Sessions []MeditationSession `json:"sessions"`
}

// JournalPrompt is ordered like CBTStep and edited with the same helpers.
type JournalPrompt struct {
	ID     string `json:"id"`
	Order  int    `json:"order"`
	Prompt string `json:"prompt"`
}

func (p JournalPrompt) Key() string         { return p.ID }
func (p *JournalPrompt) SetOrder(order int) { p.Order = order }

type JournalingPayload struct {
	Prompts []JournalPrompt `json:"prompts"`
}

type GratitudePayload struct {
	Prompts   []string `json:"prompts"`
	DailyGoal int      `json:"dailyGoal"`
}

type SleepTip struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

type SleepPayload struct {
	Tips            []SleepTip `json:"tips"`
	WindDownMinutes int        `json:"windDownMinutes"`
}

type MoodOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type MoodTrackingPayload struct {
	Moods   []MoodOption `json:"moods"`
	Factors []string     `json:"factors"`
}

type Activity struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"` // "pleasure" or "mastery"
	Effort   int    `json:"effort"`   // 1-5
}

type ActivationPayload struct {
	Activities []Activity `json:"activities"`
}

type Affirmation struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

type AffirmationsPayload struct {
	Affirmations []Affirmation `json:"affirmations"`
}

func (*CBTPayload) ContentType() ContentType          { return ContentCBTThoughtRecords }
func (*BreathingPayload) ContentType() ContentType    { return ContentMindfulnessBreathing }
func (*MusicPayload) ContentType() ContentType        { return ContentMusicTherapy }
func (*MeditationPayload) ContentType() ContentType   { return ContentGuidedMeditation }
func (*JournalingPayload) ContentType() ContentType   { return ContentJournaling }
func (*GratitudePayload) ContentType() ContentType    { return ContentGratitudePractice }
func (*SleepPayload) ContentType() ContentType        { return ContentSleepHygiene }
func (*MoodTrackingPayload) ContentType() ContentType { return ContentMoodTracking }
func (*ActivationPayload) ContentType() ContentType   { return ContentBehavioralActivation }
func (*AffirmationsPayload) ContentType() ContentType { return ContentAffirmations }

func (*CBTPayload) payload()          {}
func (*BreathingPayload) payload()    {}
func (*MusicPayload) payload()        {}
func (*MeditationPayload) payload()   {}
func (*JournalingPayload) payload()   {}
func (*GratitudePayload) payload()    {}
func (*SleepPayload) payload()        {}
func (*MoodTrackingPayload) payload() {}
func (*ActivationPayload) payload()   {}
func (*AffirmationsPayload) payload() {}
