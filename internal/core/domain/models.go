package domain

import "time"

// Payloads exchanged with the platform API. The backend owns their shape; the
// client passes them through and only relies on identifiers for cache seeding.

// User is a platform account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is returned by the login and refresh endpoints.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials are submitted by the sign-in flow.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordForgot starts a forgot-password flow.
type PasswordForgot struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordReset completes a forgot-password flow.
type PasswordReset struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"-"                validate:"required,eqfield=Password"`
}

// ProfileUpdate changes the signed-in user's profile.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// Course is a sequence of clips.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	ClipIDs     []string  `json:"clipIds,omitempty"`
	Version     int       `json:"version,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// CourseInput creates or updates a course.
type CourseInput struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	ClipIDs     []string `json:"clipIds,omitempty"`
}

// Enrollment records that a user joined a course.
type Enrollment struct {
	CourseID   string    `json:"courseId"`
	UserID     string    `json:"userId"`
	EnrolledAt time.Time `json:"enrolledAt,omitzero"`
}

// CourseProgress is the current user's progress in a course.
type CourseProgress struct {
	CourseID       string   `json:"courseId"`
	CompletedClips []string `json:"completedClips,omitempty"`
	Percent        float64  `json:"percent"`
}

// ProgressUpdate marks a clip of a course as watched.
type ProgressUpdate struct {
	ClipID   string `json:"clipId"`
	Position int    `json:"position,omitempty"`
	Complete bool   `json:"complete,omitempty"`
}

// Certificate is issued when a course is completed.
type Certificate struct {
	ID       string    `json:"id"`
	CourseID string    `json:"courseId"`
	URL      string    `json:"url"`
	IssuedAt time.Time `json:"issuedAt,omitzero"`
}

// Clip is an uploaded training video.
type Clip struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	ThumbnailURL    string `json:"thumbnailUrl,omitempty"`
	VideoURL        string `json:"videoUrl,omitempty"`
	Status          string `json:"status,omitempty"`
}

// ClipInput updates clip metadata.
type ClipInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Note is a timestamped annotation on a clip.
type Note struct {
	ID        string  `json:"id"`
	ClipID    string  `json:"clipId"`
	Timestamp float64 `json:"timestamp"`
	Body      string  `json:"body"`
}

// NoteInput creates a note.
type NoteInput struct {
	Timestamp float64 `json:"timestamp"`
	Body      string  `json:"body"`
}

// Transcript is the timed text of a clip.
type Transcript struct {
	ClipID   string              `json:"clipId"`
	Segments []TranscriptSegment `json:"segments"`
}

// TranscriptSegment is one timed line of a transcript.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Bookmark is the bookmark state of a clip for the current user.
type Bookmark struct {
	ClipID     string `json:"clipId"`
	Bookmarked bool   `json:"bookmarked"`
}

// Report flags a clip for review.
type Report struct {
	Reason  string `json:"reason"            validate:"required"`
	Details string `json:"details,omitempty"`
}

// Quiz belongs to a course.
type Quiz struct {
	ID        string         `json:"id"`
	CourseID  string         `json:"courseId"`
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

// QuizQuestion is one question of a quiz.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices,omitempty"`
}

// QuizSubmission holds answers keyed by question id.
type QuizSubmission struct {
	Answers map[string]string `json:"answers"`
}

// QuizResult is the graded outcome of a submission.
type QuizResult struct {
	QuizID   string  `json:"quizId"`
	CourseID string  `json:"courseId"`
	Score    float64 `json:"score"`
	Passed   bool    `json:"passed"`
}

// Customer is a tenant seen from the admin dashboard.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Plan   string `json:"plan,omitempty"`
	Seats  int    `json:"seats,omitempty"`
	Status string `json:"status,omitempty"`
}

// CustomerInput creates or updates a customer.
type CustomerInput struct {
	Name   string `json:"name,omitempty"`
	Plan   string `json:"plan,omitempty"`
	Seats  int    `json:"seats,omitempty"`
	Status string `json:"status,omitempty"`
}

// Task is an operational work item on the admin dashboard.
type Task struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	CustomerID string `json:"customerId,omitempty"`
}

// AdminStats summarizes the platform for administrators.
type AdminStats struct {
	Customers   int `json:"customers"`
	ActiveUsers int `json:"activeUsers"`
	OpenTasks   int `json:"openTasks"`
}

// AnalyticsOverview aggregates viewing activity.
type AnalyticsOverview struct {
	Views          int     `json:"views"`
	Completions    int     `json:"completions"`
	ActiveLearners int     `json:"activeLearners"`
	WatchHours     float64 `json:"watchHours"`
}

// EngagementStats are per clip or per course statistics.
type EngagementStats struct {
	ID             string  `json:"id"`
	Views          int     `json:"views"`
	Completions    int     `json:"completions"`
	CompletionRate float64 `json:"completionRate"`
}

// Plan is a purchasable billing plan.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int    `json:"priceCents"`
	Interval   string `json:"interval"`
}

// Subscription is the organization's current plan.
type Subscription struct {
	PlanID   string    `json:"planId"`
	Status   string    `json:"status"`
	Seats    int       `json:"seats"`
	RenewsAt time.Time `json:"renewsAt,omitzero"`
}

// PlanChange requests a different plan or seat count.
type PlanChange struct {
	PlanID string `json:"planId"`
	Seats  int    `json:"seats,omitempty"`
}

// Invoice is a billing document.
type Invoice struct {
	ID          string    `json:"id"`
	AmountCents int       `json:"amountCents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	IssuedAt    time.Time `json:"issuedAt,omitzero"`
}

// CheckoutSession is a hosted payment page.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Organization is the customer's workspace.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Member is a user belonging to an organization.
type Member struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Invitation adds a member to an organization.
type Invitation struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required"`
}

// OrganizationSettings groups the settings surface of an organization.
type OrganizationSettings struct {
	SSO           SSOSettings       `json:"sso"`
	Retention     RetentionPolicy   `json:"retention"`
	Integrations  []Integration     `json:"integrations,omitempty"`
	Notifications NotificationPrefs `json:"notifications"`
}

// SSOSettings configures single sign-on.
type SSOSettings struct {
	Enabled     bool   `json:"enabled"`
	Provider    string `json:"provider,omitempty"`
	MetadataURL string `json:"metadataUrl,omitempty"`
}

// RetentionPolicy configures how long recordings are kept.
type RetentionPolicy struct {
	Days            int  `json:"days"`
	DeleteRecording bool `json:"deleteRecording"`
}

// Integration is a connected third-party service.
type Integration struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// NotificationPrefs selects which events send notifications.
type NotificationPrefs struct {
	Email  bool `json:"email"`
	Slack  bool `json:"slack"`
	Digest bool `json:"digest"`
}

// SearchResults is returned by the search endpoint.
type SearchResults struct {
	Clips   []Clip   `json:"clips"`
	Courses []Course `json:"courses"`
}

// UploadTicket is a presigned upload target.
type UploadTicket struct {
	URL    string            `json:"url"`
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields,omitempty"`
}

// UploadTicketRequest asks for a presigned upload target.
type UploadTicketRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// ExportRequest asks the backend to export data.
type ExportRequest struct {
	Resource string  `json:"resource"`
	Format   string  `json:"format"`
	Filters  Filters `json:"filters,omitempty"`
}

// ExportJob tracks an export.
type ExportJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
}
