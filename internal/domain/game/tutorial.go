package game

// TutorialStep describes one instructor-led section of Tutorial
// Island. Steps chain through NextStep until the final gate, which has
// none.
type TutorialStep struct {
	Name               string         `json:"name"`
	Instructor         string         `json:"instructor"`
	Location           string         `json:"location"`
	Description        string         `json:"description"`
	Objectives         []string       `json:"objectives"`
	RequiredItems      []string       `json:"required_items,omitempty"`
	RequiredSkills     map[string]int `json:"required_skills,omitempty"`
	CompletionTriggers []string       `json:"completion_triggers"`
	NextStep           string         `json:"next_step,omitempty"`
	XPRewards          map[string]int `json:"xp_rewards,omitempty"`
	ItemRewards        map[string]int `json:"item_rewards,omitempty"`
}

// Terminal reports whether the step has no successor.
func (s TutorialStep) Terminal() bool { return s.NextStep == "" }

// TutorialProgress is the persisted cursor through the tutorial.
type TutorialProgress struct {
	CurrentStep    string   `json:"current_step"`
	ObjectiveIndex int      `json:"objective_index"`
	CompletedSteps []string `json:"completed_steps"`
	Complete       bool     `json:"complete"`
}

// NewTutorialProgress returns progress positioned at the first step.
func NewTutorialProgress() TutorialProgress {
	return TutorialProgress{
		CurrentStep:    FirstTutorialStep,
		CompletedSteps: []string{},
	}
}

// HasCompletedStep reports whether the named step was finished.
func (p TutorialProgress) HasCompletedStep(name string) bool {
	return containsString(p.CompletedSteps, name)
}

// FirstTutorialStep is where a fresh character begins.
const FirstTutorialStep = "survival_expert_intro"

// TutorialStepByName returns the named step from the canonical table.
func TutorialStepByName(name string) (TutorialStep, bool) {
	for _, s := range TutorialSteps {
		if s.Name == name {
			return s, true
		}
	}
	return TutorialStep{}, false
}

// TutorialSteps is the canonical Tutorial Island sequence in chain
// order.
var TutorialSteps = []TutorialStep{
	{
		Name:        "survival_expert_intro",
		Instructor:  "Survival Expert",
		Location:    "Tutorial Island - Survival Area",
		Description: "Learn basic survival skills",
		Objectives: []string{
			"Talk to the Survival Expert",
			"Click on the fishing spot to catch shrimp",
			"Light a fire",
			"Cook the shrimp",
		},
		CompletionTriggers: []string{
			"You have completed the survival section",
			"Now head through the gate to find your next instructor",
		},
		NextStep: "master_chef",
		XPRewards: map[string]int{
			"fishing":    25,
			"firemaking": 25,
			"cooking":    25,
		},
		ItemRewards: map[string]int{
			"shrimp": 5,
			"logs":   5,
		},
	},
	{
		Name:        "master_chef",
		Instructor:  "Master Chef",
		Location:    "Tutorial Island - Cooking Area",
		Description: "Learn to make bread",
		Objectives: []string{
			"Talk to the Master Chef",
			"Make flour from wheat",
			"Make bread dough",
			"Bake bread",
		},
		CompletionTriggers: []string{
			"You've made bread",
			"Move through the door to continue",
		},
		NextStep: "quest_guide",
		XPRewards: map[string]int{
			"cooking":  50,
			"crafting": 25,
		},
		ItemRewards: map[string]int{
			"bread": 5,
			"flour": 10,
			"wheat": 10,
		},
	},
	{
		Name:        "quest_guide",
		Instructor:  "Quest Guide",
		Location:    "Tutorial Island - Quest Area",
		Description: "Learn about quests",
		Objectives: []string{
			"Talk to the Quest Guide",
			"Open the quest journal",
			"Read about quests",
		},
		CompletionTriggers: []string{
			"You've learned about quests",
			"Head through the gate to continue",
		},
		NextStep: "mining_instructor",
		XPRewards: map[string]int{
			"quest_points": 1,
		},
	},
	{
		Name:        "mining_instructor",
		Instructor:  "Mining Instructor",
		Location:    "Tutorial Island - Mining Area",
		Description: "Learn to mine",
		Objectives: []string{
			"Talk to the Mining Instructor",
			"Mine copper and tin ore",
			"Smelt a bronze bar",
			"Make a bronze dagger",
		},
		CompletionTriggers: []string{
			"You've made a bronze dagger",
			"Head through the gate to continue",
		},
		NextStep: "combat_instructor",
		XPRewards: map[string]int{
			"mining":   50,
			"smithing": 50,
			"crafting": 25,
		},
		ItemRewards: map[string]int{
			"copper_ore":    5,
			"tin_ore":       5,
			"bronze_bar":    3,
			"bronze_dagger": 1,
		},
	},
	{
		Name:        "combat_instructor",
		Instructor:  "Combat Instructor",
		Location:    "Tutorial Island - Combat Area",
		Description: "Learn combat basics",
		Objectives: []string{
			"Talk to the Combat Instructor",
			"Equip the bronze dagger",
			"Attack the chicken",
			"Bury the bones",
		},
		RequiredItems: []string{"bronze_dagger"},
		CompletionTriggers: []string{
			"You've learned combat basics",
			"Head through the gate to continue",
		},
		NextStep: "banker",
		XPRewards: map[string]int{
			"attack":   25,
			"strength": 25,
			"defence":  25,
			"prayer":   25,
		},
		ItemRewards: map[string]int{
			"bones":   5,
			"chicken": 3,
		},
	},
	{
		Name:        "banker",
		Instructor:  "Banker",
		Location:    "Tutorial Island - Bank Area",
		Description: "Learn about banking",
		Objectives: []string{
			"Talk to the Banker",
			"Open your bank",
			"Deposit items",
			"Withdraw items",
		},
		CompletionTriggers: []string{
			"You've learned about banking",
			"Head through the gate to continue",
		},
		NextStep: "final_gate",
		ItemRewards: map[string]int{
			"coins": 25,
		},
	},
	{
		Name:        "final_gate",
		Instructor:  "Gate Keeper",
		Location:    "Tutorial Island - Final Gate",
		Description: "Leave Tutorial Island",
		Objectives: []string{
			"Talk to the Gate Keeper",
			"Confirm you're ready to leave",
		},
		CompletionTriggers: []string{
			"You are now ready to leave Tutorial Island",
			"You will be teleported to Lumbridge",
		},
		ItemRewards: map[string]int{
			"coins": 25,
		},
	},
}
