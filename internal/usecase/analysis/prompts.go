package analysis

import "fmt"

// Prompt templates sent to the generation service. Ported wording; the
// normalizer assumes these response shapes.

func summaryPrompt(transcript string) string {
	return fmt.Sprintf(`Provide a concise, single-paragraph summary of the following meeting transcript.
Keep the summary to 3-5 sentences.
Transcript:
%s`, transcript)
}

func sentimentPrompt(transcript string) string {
	return fmt.Sprintf(`Analyze the overall sentiment of the following meeting transcript.
Only respond with one word: Positive, Negative, or Neutral.
Transcript:
%s`, transcript)
}

func purposePrompt(transcript string) string {
	return fmt.Sprintf(`Analyze the following meeting transcript and determine the primary purpose or type of meeting.

Common meeting types include:
- Daily Stand-up / Scrum
- Sprint Planning
- Sprint Retrospective
- Project Review
- Stakeholder Update
- Team Sync
- Client Meeting
- Strategy Session
- Product Demo
- Training Session
- One-on-One
- All-Hands Meeting
- Design Review
- Technical Discussion
- Budget Planning
- Performance Review

Respond with just the meeting type/purpose (2-4 words maximum).
If unclear, respond with "General Discussion".

Transcript:
%s`, transcript)
}

func tagsPrompt(transcript string) string {
	return fmt.Sprintf(`Generate 3-5 relevant tags for the following meeting transcript.
Tags should be:
- Single words or short phrases (1-2 words)
- Relevant to the content, topics, or purpose
- Useful for search and categorization
- Professional and descriptive

Return only a JSON array of strings, nothing else:
["tag1", "tag2", "tag3", "tag4", "tag5"]

Example good tags: ["Design", "Feedback", "Sprint", "Budget", "Client", "Strategy", "Review", "Planning", "Technical", "UI/UX"]

Transcript:
%s`, transcript)
}

func actionItemsPrompt(transcript string) string {
	return fmt.Sprintf(`Extract clear action items from the transcript. Respond in JSON format only:
[
  { "task": "description", "assignee": "person", "due": "YYYY-MM-DD or null" }
]
Transcript:
%s`, transcript)
}

func keywordsPrompt(transcript string) string {
	return fmt.Sprintf(`Extract 5-10 keywords or phrases from the transcript. Return only a JSON array.
Transcript:
%s`, transcript)
}
