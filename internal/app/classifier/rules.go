package classifier

import "github.com/PabloGalante/farum-triage/internal/domain"

// EmotionRule is one row of the emotion table. Table position breaks score ties.
type EmotionRule struct {
	Emotion  domain.Emotion
	Keywords []string
}

// IntentRule is one row of the intent table. The first matching row wins.
type IntentRule struct {
	Intent   domain.Intent
	Keywords []string
}

// EmotionRules is evaluated in order; the highest keyword count wins, earlier rows win ties.
var EmotionRules = []EmotionRule{
	{domain.EmotionSad, []string{
		"sad", "sadness", "unhappy", "depressed", "depressing", "down", "heartbroken",
		"crying", "cry", "cried", "tears", "miserable", "grief", "grieving", "upset",
		"hurt", "hurting", "breakup", "broke up", "miss her", "miss him", "miss them",
	}},
	{domain.EmotionAnxious, []string{
		"anxious", "anxiety", "worried", "worry", "worrying", "nervous", "panic",
		"panicking", "scared", "afraid", "fear", "uneasy", "on edge", "restless",
	}},
	{domain.EmotionAngry, []string{
		"angry", "anger", "mad", "furious", "pissed", "annoyed", "irritated",
		"frustrated", "frustrating", "hate", "hated", "hates", "rage", "fed up",
	}},
	{domain.EmotionHappy, []string{
		"happy", "happier", "glad", "excited", "great", "amazing", "wonderful",
		"joy", "joyful", "grateful", "thankful", "proud", "awesome", "fantastic", "good news",
	}},
	{domain.EmotionStressed, []string{
		"stressed", "stress", "stressful", "overwhelmed", "overwhelming", "pressure",
		"burned out", "burnt out", "burnout", "too much", "deadline", "deadlines", "swamped",
	}},
	{domain.EmotionConfused, []string{
		"confused", "confusing", "lost", "unsure", "don't know what", "not sure",
		"mixed feelings", "torn", "uncertain",
	}},
	{domain.EmotionLonely, []string{
		"lonely", "loneliness", "alone", "isolated", "no friends", "nobody", "no one",
	}},
	{domain.EmotionTired, []string{
		"tired", "exhausted", "drained", "sleepy", "worn out", "fatigue", "can't sleep",
	}},
}

// IntentRules is evaluated in order. Requests come before greetings so "hi, any advice?"
// is treated as a request for advice.
var IntentRules = []IntentRule{
	{domain.IntentRomanticRequest, []string{
		"be my girlfriend", "be my boyfriend", "date me", "marry me", "love me",
		"do you love me", "kiss me", "romantic",
	}},
	{domain.IntentAffectionRequest, []string{
		"hug", "hugs", "need a hug", "comfort me", "hold me", "cheer me up",
		"say something nice", "make me feel better",
	}},
	{domain.IntentDirectRequest, []string{
		"can you", "could you", "would you", "please", "tell me", "give me",
		"recommend", "suggest", "play some", "play me",
	}},
	{domain.IntentSeekingAdvice, []string{
		"advice", "what should i do", "should i", "what do i do", "how do i",
		"how can i", "help me decide", "any tips", "tips",
	}},
	{domain.IntentSeekingGuidance, []string{
		"guidance", "guide me", "where do i start", "next step", "next steps",
		"how to cope", "cope", "coping", "deal with", "handle this",
	}},
	{domain.IntentSeekingUnderstanding, []string{
		"why do i", "why am i", "why does", "why is", "understand", "make sense",
		"is it normal", "is this normal", "what's wrong with me", "what is wrong with me",
	}},
	{domain.IntentSharingFeelings, []string{
		"i feel", "i'm feeling", "i am feeling", "i felt", "feeling", "i've been feeling",
		"i'm so", "i am so", "i'm really", "makes me feel",
	}},
	{domain.IntentGreeting, []string{
		"hi", "hello", "hey", "hiya", "good morning", "good afternoon", "good evening",
		"what's up", "howdy", "greetings",
	}},
	{domain.IntentCasual, []string{
		"lol", "haha", "just chilling", "nothing much", "bored", "how are you",
		"how's it going", "what are you doing", "weather", "weekend",
	}},
}

// musicEmotions are the emotions that come with a music suggestion.
var musicEmotions = map[domain.Emotion]string{
	domain.EmotionSad:      "gentle acoustic songs for a heavy heart",
	domain.EmotionAnxious:  "slow ambient tracks to steady your breathing",
	domain.EmotionAngry:    "calming instrumental music to cool down",
	domain.EmotionHappy:    "upbeat songs to keep the good mood going",
	domain.EmotionStressed: "lo-fi beats to help you decompress",
}
