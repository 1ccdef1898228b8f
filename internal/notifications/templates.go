package notifications

import "fmt"

// Schedule is the default delivery schedule for kinds that have one.
type Schedule struct {
	Time      string // "HH:MM" wall-clock
	Frequency string // daily, weekly, monthly
	Days      []int  // weekday numbers, 0 = Sunday
}

// Template is the default content and classification for a kind.
type Template struct {
	Kind       Kind
	Title      string
	Message    string
	Priority   Priority
	Actionable bool
	Category   Category
	Icon       string
	Color      string
	Schedule   *Schedule
}

var kindOrder = []Kind{
	KindMorningNotification, KindEveningSummary, KindDailyDigest,
	KindTaskDue, KindTaskOverdue, KindTaskCompleted, KindTaskAssigned, KindTaskPriorityChanged,
	KindProjectUpdate, KindProjectDeadline, KindProjectCompleted, KindProjectAtRisk, KindProjectMilestone,
	KindMeetingReminder, KindMeetingStarting, KindMeetingCompleted, KindMeetingCancelled,
	KindAIInsight, KindAIRecommendation, KindAIAlert, KindSmartAlert,
	KindTeamInvite, KindTeamUpdate, KindCollaborationRequest,
	KindSystemUpdate, KindMaintenanceNotice, KindSecurityAlert,
	KindWeeklyReport, KindMonthlyReport, KindProductivityReport,
	KindCustomReminder, KindGoalReminder, KindHabitReminder,
}

var templates = map[Kind]Template{
	KindMorningNotification: {
		Kind:       KindMorningNotification,
		Title:      "Good Morning! Your Daily AI Summary",
		Message:    "Here's your personalized project update and AI insights for today.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryAI,
		Icon:       "🌅",
		Color:      "blue",
		Schedule:   &Schedule{Time: "08:00", Frequency: "daily"},
	},
	KindEveningSummary: {
		Kind:       KindEveningSummary,
		Title:      "Evening Wrap-up",
		Message:    "Review your day's accomplishments and plan for tomorrow.",
		Priority:   PriorityLow,
		Actionable: true,
		Category:   CategoryReport,
		Icon:       "🌙",
		Color:      "purple",
		Schedule:   &Schedule{Time: "18:00", Frequency: "daily"},
	},
	KindDailyDigest: {
		Kind:       KindDailyDigest,
		Title:      "Daily Project Digest",
		Message:    "Summary of all project activities and team updates.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryReport,
		Icon:       "📊",
		Color:      "green",
		Schedule:   &Schedule{Time: "17:00", Frequency: "daily"},
	},
	KindTaskDue: {
		Kind:       KindTaskDue,
		Title:      "Task Due Soon",
		Message:    "You have tasks approaching their due date.",
		Priority:   PriorityHigh,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "⏰",
		Color:      "orange",
	},
	KindTaskOverdue: {
		Kind:       KindTaskOverdue,
		Title:      "Overdue Task Alert",
		Message:    "You have overdue tasks that need immediate attention.",
		Priority:   PriorityUrgent,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "🚨",
		Color:      "red",
	},
	KindTaskCompleted: {
		Kind:       KindTaskCompleted,
		Title:      "Task Completed",
		Message:    "Great job! You've completed a task.",
		Priority:   PriorityLow,
		Actionable: false,
		Category:   CategoryTask,
		Icon:       "✅",
		Color:      "green",
	},
	KindTaskAssigned: {
		Kind:       KindTaskAssigned,
		Title:      "New Task Assigned",
		Message:    "You've been assigned a new task.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "📋",
		Color:      "blue",
	},
	KindTaskPriorityChanged: {
		Kind:       KindTaskPriorityChanged,
		Title:      "Task Priority Updated",
		Message:    "The priority of one of your tasks has been changed.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "⚡",
		Color:      "yellow",
	},
	KindProjectUpdate: {
		Kind:       KindProjectUpdate,
		Title:      "Project Update",
		Message:    "There's been an update to one of your projects.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryProject,
		Icon:       "📁",
		Color:      "blue",
	},
	KindProjectDeadline: {
		Kind:       KindProjectDeadline,
		Title:      "Project Deadline Approaching",
		Message:    "A project deadline is coming up soon.",
		Priority:   PriorityHigh,
		Actionable: true,
		Category:   CategoryProject,
		Icon:       "📅",
		Color:      "orange",
	},
	KindProjectCompleted: {
		Kind:       KindProjectCompleted,
		Title:      "Project Completed",
		Message:    "Congratulations! A project has been completed.",
		Priority:   PriorityLow,
		Actionable: false,
		Category:   CategoryProject,
		Icon:       "🎉",
		Color:      "green",
	},
	KindProjectAtRisk: {
		Kind:       KindProjectAtRisk,
		Title:      "Project at Risk",
		Message:    "A project may be at risk of missing its deadline.",
		Priority:   PriorityUrgent,
		Actionable: true,
		Category:   CategoryProject,
		Icon:       "⚠️",
		Color:      "red",
	},
	KindProjectMilestone: {
		Kind:       KindProjectMilestone,
		Title:      "Project Milestone Reached",
		Message:    "A project milestone has been achieved.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryProject,
		Icon:       "🏆",
		Color:      "purple",
	},
	KindMeetingReminder: {
		Kind:       KindMeetingReminder,
		Title:      "Meeting Reminder",
		Message:    "You have a meeting scheduled soon.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryMeeting,
		Icon:       "📅",
		Color:      "blue",
	},
	KindMeetingStarting: {
		Kind:       KindMeetingStarting,
		Title:      "Meeting Starting Now",
		Message:    "Your meeting is starting right now.",
		Priority:   PriorityHigh,
		Actionable: true,
		Category:   CategoryMeeting,
		Icon:       "🔔",
		Color:      "orange",
	},
	KindMeetingCompleted: {
		Kind:       KindMeetingCompleted,
		Title:      "Meeting Completed",
		Message:    "Your meeting has ended. Review the summary and action items.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryMeeting,
		Icon:       "✅",
		Color:      "green",
	},
	KindMeetingCancelled: {
		Kind:       KindMeetingCancelled,
		Title:      "Meeting Cancelled",
		Message:    "A scheduled meeting has been cancelled.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryMeeting,
		Icon:       "❌",
		Color:      "gray",
	},
	KindAIInsight: {
		Kind:       KindAIInsight,
		Title:      "AI Insight Available",
		Message:    "New AI-powered insights are available for your projects.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryAI,
		Icon:       "🤖",
		Color:      "purple",
	},
	KindAIRecommendation: {
		Kind:       KindAIRecommendation,
		Title:      "AI Recommendation",
		Message:    "AI has a new recommendation to improve your productivity.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryAI,
		Icon:       "💡",
		Color:      "yellow",
	},
	KindAIAlert: {
		Kind:       KindAIAlert,
		Title:      "AI Alert",
		Message:    "AI has detected an important pattern or issue.",
		Priority:   PriorityHigh,
		Actionable: true,
		Category:   CategoryAI,
		Icon:       "🚨",
		Color:      "red",
	},
	KindSmartAlert: {
		Kind:       KindSmartAlert,
		Title:      "Smart Alert",
		Message:    "Intelligent alert based on your work patterns.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryAI,
		Icon:       "🧠",
		Color:      "blue",
	},
	KindTeamInvite: {
		Kind:       KindTeamInvite,
		Title:      "Team Invitation",
		Message:    "You've been invited to join a team.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTeam,
		Icon:       "👥",
		Color:      "blue",
	},
	KindTeamUpdate: {
		Kind:       KindTeamUpdate,
		Title:      "Team Update",
		Message:    "There's an update from your team.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTeam,
		Icon:       "👥",
		Color:      "green",
	},
	KindCollaborationRequest: {
		Kind:       KindCollaborationRequest,
		Title:      "Collaboration Request",
		Message:    "Someone wants to collaborate on a project.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTeam,
		Icon:       "🤝",
		Color:      "purple",
	},
	KindSystemUpdate: {
		Kind:       KindSystemUpdate,
		Title:      "System Update",
		Message:    "The system has been updated with new features.",
		Priority:   PriorityLow,
		Actionable: true,
		Category:   CategorySystem,
		Icon:       "🔄",
		Color:      "blue",
	},
	KindMaintenanceNotice: {
		Kind:       KindMaintenanceNotice,
		Title:      "Maintenance Notice",
		Message:    "Scheduled maintenance will occur soon.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategorySystem,
		Icon:       "🔧",
		Color:      "orange",
	},
	KindSecurityAlert: {
		Kind:       KindSecurityAlert,
		Title:      "Security Alert",
		Message:    "Important security information for your account.",
		Priority:   PriorityUrgent,
		Actionable: true,
		Category:   CategorySystem,
		Icon:       "🔒",
		Color:      "red",
	},
	KindWeeklyReport: {
		Kind:       KindWeeklyReport,
		Title:      "Weekly Report",
		Message:    "Your weekly productivity and project report is ready.",
		Priority:   PriorityLow,
		Actionable: true,
		Category:   CategoryReport,
		Icon:       "📈",
		Color:      "green",
		Schedule:   &Schedule{Time: "09:00", Frequency: "weekly", Days: []int{1}},
	},
	KindMonthlyReport: {
		Kind:       KindMonthlyReport,
		Title:      "Monthly Report",
		Message:    "Your monthly project and productivity summary is available.",
		Priority:   PriorityLow,
		Actionable: true,
		Category:   CategoryReport,
		Icon:       "📊",
		Color:      "blue",
		Schedule:   &Schedule{Time: "09:00", Frequency: "monthly", Days: []int{1}},
	},
	KindProductivityReport: {
		Kind:       KindProductivityReport,
		Title:      "Productivity Report",
		Message:    "AI-generated productivity insights and recommendations.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryReport,
		Icon:       "📊",
		Color:      "purple",
	},
	KindCustomReminder: {
		Kind:       KindCustomReminder,
		Title:      "Custom Reminder",
		Message:    "Your custom reminder is due.",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "⏰",
		Color:      "blue",
	},
	KindGoalReminder: {
		Kind:       KindGoalReminder,
		Title:      "Goal Reminder",
		Message:    "Don't forget about your goals!",
		Priority:   PriorityMedium,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "🎯",
		Color:      "green",
	},
	KindHabitReminder: {
		Kind:       KindHabitReminder,
		Title:      "Habit Reminder",
		Message:    "Time to work on your habits.",
		Priority:   PriorityLow,
		Actionable: true,
		Category:   CategoryTask,
		Icon:       "🔄",
		Color:      "purple",
	},
}

func init() {
	if len(kindOrder) != len(templates) {
		panic(fmt.Sprintf("notification registry mismatch: %d kinds ordered, %d templated", len(kindOrder), len(templates)))
	}
	for _, k := range kindOrder {
		if _, ok := templates[k]; !ok {
			panic(fmt.Sprintf("notification kind %q has no template", k))
		}
	}
}

// Lookup returns the template for a known kind. It panics on unknown kinds;
// callers that handle external input must gate on IsKnown first.
func Lookup(k Kind) Template {
	t, ok := templates[k]
	if !ok {
		panic(fmt.Sprintf("unknown notification kind %q", k))
	}
	return t
}

// Templates returns all templates in declaration order.
func Templates() []Template {
	out := make([]Template, 0, len(kindOrder))
	for _, k := range kindOrder {
		out = append(out, templates[k])
	}
	return out
}
