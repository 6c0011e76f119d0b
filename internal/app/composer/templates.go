package composer

import (
	"strings"

	"github.com/PabloGalante/farum-triage/internal/domain"
)

// Placeholders: {feeling} is the emotion phrase, {person} the person from the context,
// {situation} the ongoing situation.

var feelings = map[domain.Emotion]string{
	domain.EmotionSad:      "really down",
	domain.EmotionAnxious:  "anxious and on edge",
	domain.EmotionAngry:    "angry",
	domain.EmotionHappy:    "happy",
	domain.EmotionStressed: "stressed",
	domain.EmotionConfused: "confused",
	domain.EmotionLonely:   "lonely",
	domain.EmotionTired:    "worn out",
	domain.EmotionNeutral:  "the way you do",
}

var intentTemplates = map[domain.Intent][]string{
	domain.IntentGreeting: {
		"Hi! I'm really glad you're here. How are you feeling today?",
		"Hey there. How has your day been so far?",
		"Hello! What's on your mind today?",
	},
	domain.IntentCasual: {
		"I'm here and happy to chat. How are things going for you, really?",
		"Sounds good. Is there anything on your mind you'd like to talk through?",
	},
	domain.IntentRomanticRequest: {
		"I care about how you're doing, but I'm not able to be in a relationship with you. " +
			"I'm here to listen and support you. What's been going on lately?",
		"That's kind of you to say. I'm here as a supportive space, not a partner, " +
			"but I'd really like to hear how you're feeling.",
	},
	domain.IntentAffectionRequest: {
		"Sending you a big virtual hug. It sounds like you need some comfort right now. " +
			"I'm right here with you. Do you want to tell me what's making things hard?",
		"I wish I could give you a real hug. You deserve comfort. What would feel kind to yourself right now?",
	},
	domain.IntentDirectRequest: {
		"I'll do my best to help. Can you tell me a little more about what you need right now?",
		"Of course. Let's work through it together. What would be most helpful for you?",
	},
	domain.IntentSeekingAdvice: {
		"It makes sense to want some direction when you're feeling {feeling}. " +
			"Let's slow it down: what feels like the biggest part of the problem right now?",
		"I hear you. Before we look at options, what have you already tried, and how did it go?",
	},
	domain.IntentSeekingGuidance: {
		"Coping with this when you're feeling {feeling} is hard. One small step can be enough for today. " +
			"What's one thing that usually helps you feel a little steadier?",
		"Let's take it one step at a time. What part of this feels most urgent to you?",
	},
	domain.IntentSeekingUnderstanding: {
		"It's completely understandable to feel {feeling} in a situation like this. " +
			"Feelings like yours usually make sense once we look at what's behind them. What do you think started it?",
		"You're not strange for feeling {feeling}. Many people feel this way. When did you first notice it?",
	},
	domain.IntentSharingFeelings: {
		"Thank you for telling me. It sounds like you're feeling {feeling}, and that's okay. " +
			"Do you want to tell me more about what's going on?",
		"I'm really glad you shared that with me. Feeling {feeling} can be a lot to carry. What's been the hardest part?",
	},
}

var greetingWithHistory = []string{
	"Hi, welcome back! Last time we talked you were feeling {feeling}. How are you doing today?",
	"Hey, good to see you again. Last time things felt {feeling}. How has it been since then?",
}

var fallbackTemplates = []string{
	"I'm here with you. Can you tell me a bit more about that?",
	"Thank you for sharing. How is that affecting you right now?",
	"I'm listening. What feels most important for you to talk about?",
	"That sounds like a lot. What would help you most right now?",
}

var genericContinuation = []string{
	"I remember you mentioned the {situation}. It sounds like it's still on your mind. What's coming up for you now?",
}

// continuationTemplates is keyed by ongoing situation, then by aspect ("" is the default).
var continuationTemplates = map[string]map[string][]string{
	"breakup": {
		"regret": {
			"It's really common to replay things after a breakup and wonder what could have been different. " +
				"Hindsight makes everything look clearer than it was at the time. " +
				"What do you think you needed back then?",
		},
		"self_blame": {
			"A relationship ending is rarely one person's fault, even when it feels that way. " +
				"What would you say to a friend who was blaming themselves like this?",
		},
		"missing": {
			"Missing {person} makes so much sense. You shared a real part of your life together. " +
				"What do you miss the most?",
		},
		"anger": {
			"Feeling angry after a breakup is completely valid. Anger often shows up to protect us. What is it protecting right now?",
		},
		"moving_on": {
			"Moving on isn't a straight line, and it doesn't mean forgetting. What would a small step forward look like this week?",
		},
		"contact": {
			"Wanting to reach out to {person} is really natural. Before deciding, what are you hoping would happen if you did?",
		},
		"": {
			"It sounds like the breakup with {person} is still weighing on you. What's been on your mind about it today?",
		},
	},
	"heartbreak": {
		"regret": {
			"It's painful to keep asking yourself what you could have done differently. " +
				"Being rejected doesn't measure your worth. What are you telling yourself about it?",
		},
		"missing": {
			"Of course you miss {person}. Caring about someone doesn't switch off. How are you taking care of yourself meanwhile?",
		},
		"": {
			"Heartbreak takes time to heal. What's been the hardest moment since we last talked about it?",
		},
	},
	"bereavement": {
		"regret": {
			"Grief often brings questions like these. Wishing you had done something differently is a sign of how much you cared. " +
				"What would you want {person} to know?",
		},
		"missing": {
			"Missing {person} is part of loving them. Is there a memory that has been coming back to you?",
		},
		"": {
			"Grief comes in waves. How are you holding up with the loss of {person} today?",
		},
	},
	"family conflict": {
		"anger": {
			"It's really hard when conflict is at home, because there's nowhere to step away. " +
				"What happened this time?",
		},
		"regret": {
			"Looking back at an argument and wishing it went differently shows you care about the relationship. " +
				"Is there something you'd still like to say to {person}?",
		},
		"": {
			"It sounds like things with {person} are still tense. How are you feeling about it now?",
		},
	},
}

func fill(template string, emotion domain.Emotion, convCtx domain.ConversationContext) string {
	feeling := feelings[emotion]
	if feeling == "" {
		feeling = feelings[domain.EmotionNeutral]
	}
	person := "them"
	if p := convCtx.KeyDetails["person"]; p != "" {
		person = "your " + p
	}
	situation := convCtx.OngoingSituation
	if situation == "" {
		situation = "what you shared"
	}
	return strings.NewReplacer(
		"{feeling}", feeling,
		"{person}", person,
		"{situation}", situation,
	).Replace(template)
}

func continuationVariants(situation, aspect string) []string {
	bySituation, ok := continuationTemplates[situation]
	if !ok {
		return genericContinuation
	}
	if variants, ok := bySituation[aspect]; ok {
		return variants
	}
	if variants, ok := bySituation[""]; ok {
		return variants
	}
	return genericContinuation
}
