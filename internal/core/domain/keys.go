package domain

// Per-domain key families. Cache keys are only built through these so that
// related reads share prefixes and can be invalidated together.

// Segment names shared by several families.
const (
	segList   = "list"
	segDetail = "detail"
)

// AdminKeys builds keys for the admin dashboard.
type AdminKeys struct{}

// Admin is the admin key family.
var Admin AdminKeys

// All returns the root admin key.
func (AdminKeys) All() Key { return NewKey("admin") }

// Customers returns the prefix shared by every customer list.
func (k AdminKeys) Customers() Key { return k.All().Append("customers") }

// CustomerList returns the key of a filtered customer list.
func (k AdminKeys) CustomerList(f Filters) Key { return k.Customers().Append(f.Encode()) }

// Customer returns the key of a single customer.
// It lives outside the customers prefix so list invalidation keeps seeded details fresh.
func (k AdminKeys) Customer(id string) Key { return k.All().Append("customer", id) }

// Tasks returns the prefix shared by every task list.
func (k AdminKeys) Tasks() Key { return k.All().Append("tasks") }

// TaskList returns the key of a filtered task list.
func (k AdminKeys) TaskList(f Filters) Key { return k.Tasks().Append(f.Encode()) }

// Stats returns the key of the dashboard statistics.
func (k AdminKeys) Stats() Key { return k.All().Append("stats") }

// AnalyticsKeys builds keys for analytics reports.
type AnalyticsKeys struct{}

// Analytics is the analytics key family.
var Analytics AnalyticsKeys

// All returns the root analytics key.
func (AnalyticsKeys) All() Key { return NewKey("analytics") }

// Overview returns the key of the overview report for the given filters.
func (k AnalyticsKeys) Overview(f Filters) Key { return k.All().Append("overview", f.Encode()) }

// Clip returns the key of the statistics of one clip.
func (k AnalyticsKeys) Clip(id string) Key { return k.All().Append("clip", id) }

// Course returns the key of the statistics of one course.
func (k AnalyticsKeys) Course(id string) Key { return k.All().Append("course", id) }

// BillingKeys builds keys for billing.
type BillingKeys struct{}

// Billing is the billing key family.
var Billing BillingKeys

// All returns the root billing key.
func (BillingKeys) All() Key { return NewKey("billing") }

// Subscription returns the key of the current subscription.
func (k BillingKeys) Subscription() Key { return k.All().Append("subscription") }

// Invoices returns the key of the invoice list.
func (k BillingKeys) Invoices() Key { return k.All().Append("invoices") }

// Plans returns the key of the available plans.
func (k BillingKeys) Plans() Key { return k.All().Append("plans") }

// ClipKeys builds keys for clips.
type ClipKeys struct{}

// Clips is the clip key family.
var Clips ClipKeys

// All returns the root clip key.
func (ClipKeys) All() Key { return NewKey("clips") }

// Lists returns the prefix shared by every clip list.
func (k ClipKeys) Lists() Key { return k.All().Append(segList) }

// List returns the key of a filtered clip list.
func (k ClipKeys) List(f Filters) Key { return k.Lists().Append(f.Encode()) }

// Bookmarks returns the key of the bookmarked clip list.
func (k ClipKeys) Bookmarks() Key { return k.All().Append("bookmarks") }

// Details returns the prefix shared by every clip detail.
func (k ClipKeys) Details() Key { return k.All().Append(segDetail) }

// Detail returns the key of one clip.
func (k ClipKeys) Detail(id string) Key { return k.Details().Append(id) }

// Notes returns the key of the notes attached to a clip.
func (k ClipKeys) Notes(id string) Key { return k.Detail(id).Append("notes") }

// Transcript returns the key of a clip transcript.
func (k ClipKeys) Transcript(id string) Key { return k.Detail(id).Append("transcript") }

// Bookmark returns the key of the bookmark state of a clip.
func (k ClipKeys) Bookmark(id string) Key { return k.Detail(id).Append("bookmark") }

// CourseKeys builds keys for courses.
type CourseKeys struct{}

// Courses is the course key family.
var Courses CourseKeys

// All returns the root course key.
func (CourseKeys) All() Key { return NewKey("courses") }

// Lists returns the prefix shared by every course list.
func (k CourseKeys) Lists() Key { return k.All().Append(segList) }

// List returns the key of a filtered course list.
func (k CourseKeys) List(f Filters) Key { return k.Lists().Append(f.Encode()) }

// Enrolled returns the key of the courses the current user is enrolled in.
func (k CourseKeys) Enrolled() Key { return k.All().Append("enrolled") }

// Details returns the prefix shared by every course detail.
func (k CourseKeys) Details() Key { return k.All().Append(segDetail) }

// Detail returns the key of one course.
func (k CourseKeys) Detail(id string) Key { return k.Details().Append(id) }

// Progress returns the key of the current user's progress in a course.
func (k CourseKeys) Progress(id string) Key { return k.Detail(id).Append("progress") }

// Certificate returns the key of the completion certificate of a course.
func (k CourseKeys) Certificate(id string) Key { return k.Detail(id).Append("certificate") }

// OrganizationKeys builds keys for organizations.
type OrganizationKeys struct{}

// Organizations is the organization key family.
var Organizations OrganizationKeys

// All returns the root organization key.
func (OrganizationKeys) All() Key { return NewKey("organizations") }

// Detail returns the key of one organization.
func (k OrganizationKeys) Detail(id string) Key { return k.All().Append(segDetail, id) }

// Members returns the key of the member list of an organization.
func (k OrganizationKeys) Members(id string) Key { return k.Detail(id).Append("members") }

// Settings returns the key of the settings of an organization.
func (k OrganizationKeys) Settings(id string) Key { return k.Detail(id).Append("settings") }

// QuizKeys builds keys for quizzes.
type QuizKeys struct{}

// Quizzes is the quiz key family.
var Quizzes QuizKeys

// All returns the root quiz key.
func (QuizKeys) All() Key { return NewKey("quizzes") }

// Detail returns the key of one quiz.
func (k QuizKeys) Detail(id string) Key { return k.All().Append(segDetail, id) }

// SearchKeys builds keys for search results.
type SearchKeys struct{}

// Search is the search key family.
var Search SearchKeys

// All returns the root search key.
func (SearchKeys) All() Key { return NewKey("search") }

// Results returns the key of the results for a query.
func (k SearchKeys) Results(query string, f Filters) Key { return k.All().Append(query, f.Encode()) }

// UserKeys builds keys for users.
type UserKeys struct{}

// Users is the user key family.
var Users UserKeys

// All returns the root user key.
func (UserKeys) All() Key { return NewKey("users") }

// Me returns the key of the signed-in user.
func (k UserKeys) Me() Key { return k.All().Append("me") }

// Detail returns the key of one user.
func (k UserKeys) Detail(id string) Key { return k.All().Append(segDetail, id) }
