package ai

// MentionPrompt instructs the model to tag named-entity mentions in a
// numbered list of sentences. The first placeholder is the comma-separated
// list of allowed labels, the second repeats it for the rules section.
const MentionPrompt = `
# Task Context
You are a named-entity tagger. You will be given a numbered list of sentences from a single document.

# Detailed Task Description & Rules
- For every sentence, list each named-entity mention that appears in it.
- Allowed entity labels: %s
- Report the mention text EXACTLY as it appears in the sentence. Do not expand, normalize, translate, or merge surface forms ("Bob" and "Robert" are separate mentions; so are "Caesar" and "CAESAR").
- Report a mention once per sentence even if it is repeated inside that sentence.
- Use the sentence number exactly as given; never renumber.
- Skip pronouns, titles without a name ("the king"), and generic role words.
- A sentence with no qualifying mentions is simply omitted from the output.

# Examples
Sentences:
1. Brutus and Cassius met Caesar at the Senate.
2. He spoke at length.

Output:
{
  "mentions": [
    {"sentence": 1, "text": "Brutus", "label": "PERSON"},
    {"sentence": 1, "text": "Cassius", "label": "PERSON"},
    {"sentence": 1, "text": "Caesar", "label": "PERSON"}
  ]
}

# Immediate Task Description or Request
Tag every named-entity mention in the sentences below using only these labels: %s. Return a JSON object with the structure shown above.
`

// SentimentPrompt instructs the model to classify the emotional tone of a
// single sentence into one label with a confidence value.
const SentimentPrompt = `
# Task Context
You are a sentiment classifier for narrative text. You will be given a single sentence.

# Detailed Task Description & Rules
- Classify the overall emotional tone of the sentence into exactly one label.
- Allowed labels: positive, negative, neutral, joy, love, optimism, admiration, approval, caring, anger, sadness, fear, disgust, disapproval, annoyance, surprise, curiosity, confusion, realization
- Confidence is a number between 0 and 1 expressing how certain you are of the label.
- Judge the sentence on its own; do not infer context from outside it.
- Dialogue counts: classify the tone of what is said, not the act of speaking.

# Output Formatting
Return a JSON object:
{
  "label": "<one allowed label>",
  "confidence": <number between 0 and 1>
}
`
