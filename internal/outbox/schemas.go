package outbox

const streakUpdatedSchema = `{
  "type": "object",
  "title": "StreakUpdated",
  "properties": {
    "owner_id": {"type": "string"},
    "activity_type": {"type": "string"},
    "current_streak": {"type": "integer"},
    "longest_streak": {"type": "integer"},
    "last_activity_date": {"type": "string"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["owner_id", "activity_type", "current_streak", "longest_streak", "last_activity_date", "occurred_at"],
  "additionalProperties": false
}`

const streakMilestoneSchema = `{
  "type": "object",
  "title": "StreakMilestone",
  "properties": {
    "owner_id": {"type": "string"},
    "milestone": {"type": "integer"},
    "current_streak": {"type": "integer"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["owner_id", "milestone", "current_streak", "occurred_at"],
  "additionalProperties": false
}`

const streakBrokenSchema = `{
  "type": "object",
  "title": "StreakBroken",
  "properties": {
    "owner_id": {"type": "string"},
    "start_date": {"type": "string"},
    "end_date": {"type": "string"},
    "length": {"type": "integer"},
    "occurred_at": {"type": "string", "format": "date-time"}
  },
  "required": ["owner_id", "start_date", "end_date", "length", "occurred_at"],
  "additionalProperties": false
}`
