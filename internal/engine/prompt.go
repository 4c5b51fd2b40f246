package engine

// LLM prompt templates — data only, no logic.

// videoNotesPrompt turns video metadata into study notes.
// Args: title, channel, description.
const videoNotesPrompt = `You take concise study notes for online videos.

Video title: %s
Channel: %s

Description:
%s

Write 5-10 short notes covering what the video is about and its key points.
Use ONLY the information above. Do not invent timestamps, quotes or numbers.
Answer in the SAME LANGUAGE as the title.

Respond with a JSON array of strings only (no markdown, no ` + "`" + `json` + "`" + ` block):
["First note.", "Second note."]`
