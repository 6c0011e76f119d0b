package continuity

// Topic is one row of the topic detection table.
type Topic struct {
	Name      string
	Situation string
	Focus     string
	Keywords  []string
}

// Topics is evaluated in order; the first topic with a keyword match wins.
var Topics = []Topic{
	{
		Name:      "relationship_loss",
		Situation: "breakup",
		Focus:     "processing the end of the relationship",
		Keywords: []string{
			"breakup", "break up", "broke up", "broken up", "dumped", "left me", "divorce",
			"split up", "my ex", "ended things",
		},
	},
	{
		Name:      "heartbreak",
		Situation: "heartbreak",
		Focus:     "self-worth after rejection",
		Keywords: []string{
			"heartbroken", "heartbreak", "unrequited", "rejected me", "doesn't love me",
			"cheated", "cheating on me",
		},
	},
	{
		Name:      "grief",
		Situation: "bereavement",
		Focus:     "making room for grief",
		Keywords: []string{
			"passed away", "died", "death", "funeral", "grieving", "grief", "lost someone",
		},
	},
	{
		Name:      "family_conflict",
		Situation: "family conflict",
		Focus:     "boundaries and communication at home",
		Keywords: []string{
			"my family", "my parents", "fight with my", "fighting with my", "argument with my",
			"argued with my", "yelled at me", "kicked me out",
		},
	},
	{
		Name:      "health_worry",
		Situation: "health concern",
		Focus:     "coping with uncertainty about health",
		Keywords: []string{
			"sick", "illness", "diagnosis", "diagnosed", "hospital", "symptoms", "health", "chronic pain",
		},
	},
	{
		Name:      "work_stress",
		Situation: "work pressure",
		Focus:     "workload and rest",
		Keywords: []string{
			"work", "job", "boss", "coworker", "coworkers", "deadline", "deadlines", "fired",
			"office", "shift", "promotion",
		},
	},
	{
		Name:      "school_stress",
		Situation: "school pressure",
		Focus:     "study load and expectations",
		Keywords: []string{
			"school", "exam", "exams", "homework", "grades", "class", "classes", "college",
			"university", "finals", "teacher",
		},
	},
	{
		Name:      "loneliness",
		Situation: "isolation",
		Focus:     "building connection",
		Keywords: []string{
			"lonely", "loneliness", "alone", "isolated", "no friends", "nobody to talk to",
		},
	},
}

// ContinuableTopics are the topics a later message may continue.
var ContinuableTopics = map[string]bool{
	"relationship_loss": true,
	"heartbreak":        true,
	"grief":             true,
	"family_conflict":   true,
}

var (
	greetings = []string{
		"hi", "hello", "hey", "hiya", "yo", "good morning", "good afternoon", "good evening",
		"hi there", "hello there", "hey there",
	}

	// references is the pronoun/reference set; a message with none of these starts a new topic.
	references = []string{
		"her", "she", "he", "him", "his", "them", "they", "that situation", "what i said",
		"my problem", "it still", "that again",
	}

	personPronouns = []string{"her", "she", "he", "him", "his", "them", "they"}

	counterfactuals = []string{
		"if i didn't", "if i hadn't", "if i had", "if only", "should have", "should've",
		"shouldn't have", "could have", "could've", "regret", "what if", "wish i had", "wish i hadn't",
	}

	people = []string{
		"girlfriend", "boyfriend", "wife", "husband", "partner", "fiance", "fiancee", "ex",
		"mom", "mother", "dad", "father", "sister", "brother", "son", "daughter",
		"grandma", "grandmother", "grandpa", "grandfather", "best friend", "friend",
		"boss", "teacher", "dog", "cat",
	}
)

// aspect is one row of the new-aspect table, checked in order.
type aspect struct {
	name     string
	keywords []string
}

var aspects = []aspect{
	{"regret", counterfactuals},
	{"self_blame", []string{"my fault", "blame myself", "i ruined", "i messed up"}},
	{"missing", []string{"miss her", "miss him", "miss them", "missing her", "missing him", "miss you"}},
	{"anger", []string{"angry", "mad", "furious", "so unfair", "hate"}},
	{"moving_on", []string{"move on", "moving on", "let go", "letting go", "get over"}},
	{"contact", []string{"text her", "text him", "call her", "call him", "texted", "reach out", "talk to her", "talk to him"}},
}
