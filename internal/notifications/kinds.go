// Package notifications holds the static notification type registry:
// the closed set of kinds the system can emit and the default template
// for each of them.
package notifications

// Kind identifies a notification type.
type Kind string

const (
	// Daily
	KindMorningNotification Kind = "morning_notification"
	KindEveningSummary      Kind = "evening_summary"
	KindDailyDigest         Kind = "daily_digest"

	// Task
	KindTaskDue             Kind = "task_due"
	KindTaskOverdue         Kind = "task_overdue"
	KindTaskCompleted       Kind = "task_completed"
	KindTaskAssigned        Kind = "task_assigned"
	KindTaskPriorityChanged Kind = "task_priority_changed"

	// Project
	KindProjectUpdate    Kind = "project_update"
	KindProjectDeadline  Kind = "project_deadline"
	KindProjectCompleted Kind = "project_completed"
	KindProjectAtRisk    Kind = "project_at_risk"
	KindProjectMilestone Kind = "project_milestone"

	// Meeting
	KindMeetingReminder  Kind = "meeting_reminder"
	KindMeetingStarting  Kind = "meeting_starting"
	KindMeetingCompleted Kind = "meeting_completed"
	KindMeetingCancelled Kind = "meeting_cancelled"

	// AI
	KindAIInsight        Kind = "ai_insight"
	KindAIRecommendation Kind = "ai_recommendation"
	KindAIAlert          Kind = "ai_alert"
	KindSmartAlert       Kind = "smart_alert"

	// Team
	KindTeamInvite           Kind = "team_invite"
	KindTeamUpdate           Kind = "team_update"
	KindCollaborationRequest Kind = "collaboration_request"

	// System
	KindSystemUpdate      Kind = "system_update"
	KindMaintenanceNotice Kind = "maintenance_notice"
	KindSecurityAlert     Kind = "security_alert"

	// Reports
	KindWeeklyReport       Kind = "weekly_report"
	KindMonthlyReport      Kind = "monthly_report"
	KindProductivityReport Kind = "productivity_report"

	// Custom reminders
	KindCustomReminder Kind = "custom_reminder"
	KindGoalReminder   Kind = "goal_reminder"
	KindHabitReminder  Kind = "habit_reminder"
)

// Priority ranks a notification's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Category groups kinds for preference and display purposes.
type Category string

const (
	CategoryTask    Category = "task"
	CategoryProject Category = "project"
	CategoryMeeting Category = "meeting"
	CategoryAI      Category = "ai"
	CategoryTeam    Category = "team"
	CategorySystem  Category = "system"
	CategoryReport  Category = "report"
)

// AllKinds returns every registered kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(templates))
	for _, k := range kindOrder {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsKnown reports whether k is a registered kind.
func IsKnown(k Kind) bool {
	_, ok := templates[k]
	return ok
}
