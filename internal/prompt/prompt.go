// Package prompt maps caller-supplied discriminators to the fixed
// (system instruction, user instruction) pairs sent to the completion
// upstream. The router is total: unrecognized discriminators fall back to a
// generic pair instead of failing. Caller text is interpolated verbatim;
// no prompt-injection sanitization is attempted.
package prompt

import "fmt"

// ContentType selects which content-generation template to use.
type ContentType int

const (
	ContentGeneric ContentType = iota
	ContentLectureNotes
	ContentRoadmap
	ContentTimetable
	ContentProject
	ContentMCQs
	ContentResearch
)

// ParseContentType maps the wire discriminator to a ContentType. Unknown
// values map to ContentGeneric and ok=false; callers treat that as the
// generic fallback, not an error.
func ParseContentType(s string) (ContentType, bool) {
	switch s {
	case "lecture-notes":
		return ContentLectureNotes, true
	case "roadmap":
		return ContentRoadmap, true
	case "timetable":
		return ContentTimetable, true
	case "project":
		return ContentProject, true
	case "mcqs":
		return ContentMCQs, true
	case "research":
		return ContentResearch, true
	default:
		return ContentGeneric, false
	}
}

// String returns the wire form of the content type, used as the artifact
// category tag.
func (ct ContentType) String() string {
	switch ct {
	case ContentLectureNotes:
		return "lecture-notes"
	case ContentRoadmap:
		return "roadmap"
	case ContentTimetable:
		return "timetable"
	case ContentProject:
		return "project"
	case ContentMCQs:
		return "mcqs"
	case ContentResearch:
		return "research"
	default:
		return "general"
	}
}

const genericSystem = "You are a helpful educational assistant."

// ForContent returns the (system, user) pair for a content-generation
// request.
func ForContent(ct ContentType, topic, details string) (system, user string) {
	if details == "" {
		details = "None"
	}

	switch ct {
	case ContentLectureNotes:
		return "You are an expert educator creating comprehensive lecture notes. Format the content with clear sections, bullet points, and key takeaways.",
			fmt.Sprintf("Create comprehensive lecture notes on: %s\n\nAdditional context: %s", topic, details)
	case ContentRoadmap:
		return "You are a learning advisor creating structured learning roadmaps. Include milestones, timelines, resources, and progressive steps.",
			fmt.Sprintf("Create a learning roadmap for: %s\n\nAdditional details: %s", topic, details)
	case ContentTimetable:
		return "You are a study planner creating realistic study schedules. Include time blocks, breaks, and balanced coverage of topics.",
			fmt.Sprintf("Create a study timetable for: %s\n\nAdditional details: %s", topic, details)
	case ContentProject:
		return "You are a project planning expert. Create detailed project outlines with phases, tasks, deliverables, and timelines.",
			fmt.Sprintf("Create a project outline for: %s\n\nAdditional details: %s", topic, details)
	case ContentMCQs:
		focus := details
		if focus == "None" {
			focus = "General coverage"
		}
		return "You are a test creator generating practice questions. Create 10 multiple-choice questions with explanations for correct answers.",
			fmt.Sprintf("Generate 10 practice MCQs on: %s\n\nFocus areas: %s", topic, focus)
	case ContentResearch:
		return "You are an academic writing expert. Create a research paper outline with sections, key points, and suggested references.",
			fmt.Sprintf("Create a research paper outline on: %s\n\nAdditional details: %s", topic, details)
	default:
		return genericSystem, fmt.Sprintf("Create content about: %s", topic)
	}
}

// ChatSystem is the system instruction for the open-ended mentor chat.
const ChatSystem = `You are an AI Study Mentor helping students with their learning journey. You provide:
- Project ideas and guidance
- Learning path recommendations
- Tool recommendations for studying
- Career advice and interview preparation
- Study techniques and tips
- Personalized educational support

Be encouraging, concise, and actionable. Format responses clearly with bullet points when helpful.`

// InterviewQuestionCount returns how many questions to generate for a
// difficulty level. Unknown difficulties get the medium count.
func InterviewQuestionCount(difficulty string) int {
	switch difficulty {
	case "easy":
		return 5
	case "hard":
		return 7
	default:
		return 6
	}
}

// ForInterviewStart returns the (system, user) pair for generating
// interview questions. The response is requested as a JSON array of
// question objects.
func ForInterviewStart(jobRole, difficulty string) (system, user string) {
	system = fmt.Sprintf(`You are an experienced technical interviewer conducting a mock interview for a %s position.
Generate %d interview questions of %s difficulty level.
Include a mix of:
- Technical skills questions
- Behavioral questions (STAR method)
- Problem-solving scenarios
- Role-specific questions

Format your response as a JSON array of question objects with this structure:
[
  {
    "question": "The interview question",
    "type": "technical | behavioral | scenario",
    "hints": ["helpful hint 1", "helpful hint 2"]
  }
]`, jobRole, InterviewQuestionCount(difficulty), difficulty)

	user = fmt.Sprintf("Generate interview questions for %s at %s level.", jobRole, difficulty)
	return system, user
}

// InterviewEvaluateSystem is the system instruction for evaluating a
// candidate's answers. It asks for an explicit 1-5 rating, which the
// interview handler parses back into a numeric score.
const InterviewEvaluateSystem = `You are an experienced interviewer providing constructive feedback.
Analyze the candidate's answer and provide:
1. Strengths (what they did well)
2. Areas for improvement
3. A rating from 1-5
4. Specific suggestions for better answers

Be encouraging but honest. Focus on helping them improve.`

// ForRoadmap returns the (system, user) pair for a personalized roadmap.
// The response is requested as a strict JSON object.
func ForRoadmap(goal, currentLevel string, timeframe int) (system, user string) {
	system = fmt.Sprintf(`You are an expert learning advisor who creates personalized, structured learning roadmaps.
Create a detailed %d-month learning roadmap that helps the user achieve their goal.

Format your response as a JSON object with this structure:
{
  "title": "Learning Roadmap Title",
  "overview": "Brief overview of the learning journey (2-3 sentences)",
  "totalDuration": "%d months",
  "milestones": [
    {
      "month": 1,
      "title": "Phase Title",
      "description": "What will be learned in this phase",
      "topics": ["Topic 1", "Topic 2", "Topic 3"],
      "projects": ["Project 1", "Project 2"],
      "resources": ["Resource recommendation 1", "Resource recommendation 2"],
      "outcome": "What the learner will achieve by the end"
    }
  ],
  "weeklySchedule": {
    "hoursPerWeek": 10,
    "breakdown": {
      "theory": "40%%",
      "practice": "40%%",
      "projects": "20%%"
    }
  },
  "skills": ["Skill 1", "Skill 2", "Skill 3"],
  "careerPaths": ["Career option 1", "Career option 2"]
}

Consider the user's current level when creating milestones. Ensure progression is logical and achievable.`, timeframe, timeframe)

	user = fmt.Sprintf(`Create a %d-month learning roadmap for:
Goal: %s
Current Level: %s

Make it practical, actionable, and tailored to their current level. Include specific topics, projects, and resources.`, timeframe, goal, currentLevel)

	return system, user
}
