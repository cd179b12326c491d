package registry

// MutationKind identifies one write operation of the platform API.
type MutationKind int

// Known mutations. Every kind must be declared in the dependency graph.
const (
	CourseCreate MutationKind = iota + 1
	CourseUpdate
	CourseDelete
	CourseEnroll
	CourseProgressUpdate
	ClipUpload
	ClipUpdate
	ClipDelete
	NoteCreate
	NoteDelete
	ClipReport
	BookmarkToggle
	QuizSubmit
	CustomerCreate
	CustomerUpdate
	CustomerDelete
	TaskUpdate
	CheckoutCreate
	PlanChange
	SubscriptionCancel
	OrganizationSettingsUpdate
	MemberInvite
	MemberRemove
	ProfileUpdate
	UploadURLRequest
	ExportRequest

	lastMutation = ExportRequest
)

type mutationInfo struct {
	name    string
	success string
	failure string
}

var mutations = map[MutationKind]mutationInfo{
	CourseCreate:               {"course.create", "Course created", "Could not create course"},
	CourseUpdate:               {"course.update", "Course updated", "Could not update course"},
	CourseDelete:               {"course.delete", "Course deleted", "Could not delete course"},
	CourseEnroll:               {"course.enroll", "Enrolled in course", "Could not enroll in course"},
	CourseProgressUpdate:       {"course.progress", "Progress saved", "Could not save progress"},
	ClipUpload:                 {"clip.upload", "Clip uploaded", "Upload failed"},
	ClipUpdate:                 {"clip.update", "Clip updated", "Could not update clip"},
	ClipDelete:                 {"clip.delete", "Clip deleted", "Could not delete clip"},
	NoteCreate:                 {"note.create", "Note added", "Could not add note"},
	NoteDelete:                 {"note.delete", "Note deleted", "Could not delete note"},
	ClipReport:                 {"clip.report", "Report submitted", "Could not submit report"},
	BookmarkToggle:             {"bookmark.toggle", "Bookmarks updated", "Could not update bookmark"},
	QuizSubmit:                 {"quiz.submit", "Quiz submitted", "Could not submit quiz"},
	CustomerCreate:             {"customer.create", "Customer created", "Could not create customer"},
	CustomerUpdate:             {"customer.update", "Customer updated", "Could not update customer"},
	CustomerDelete:             {"customer.delete", "Customer deleted", "Could not delete customer"},
	TaskUpdate:                 {"task.update", "Task updated", "Could not update task"},
	CheckoutCreate:             {"billing.checkout", "Checkout started", "Could not start checkout"},
	PlanChange:                 {"billing.plan", "Plan changed", "Could not change plan"},
	SubscriptionCancel:         {"billing.cancel", "Subscription canceled", "Could not cancel subscription"},
	OrganizationSettingsUpdate: {"organization.settings", "Settings saved", "Could not save settings"},
	MemberInvite:               {"member.invite", "Invitation sent", "Could not invite member"},
	MemberRemove:               {"member.remove", "Member removed", "Could not remove member"},
	ProfileUpdate:              {"profile.update", "Profile updated", "Could not update profile"},
	UploadURLRequest:           {"upload.presign", "Upload URL created", "Could not create upload URL"},
	ExportRequest:              {"export.request", "Export started", "Could not start export"},
}

// String returns the dotted name of the mutation, e.g. "course.enroll".
func (k MutationKind) String() string {
	if info, ok := mutations[k]; ok {
		return info.name
	}
	return "unknown"
}

// Valid reports whether k is a known mutation.
func (k MutationKind) Valid() bool {
	return k >= CourseCreate && k <= lastMutation
}

// SuccessMessage is shown after the mutation succeeds.
func (k MutationKind) SuccessMessage() string {
	return mutations[k].success
}

// FailureTitle is shown when the mutation fails.
func (k MutationKind) FailureTitle() string {
	return mutations[k].failure
}

// AllMutations returns every known mutation in declaration order.
func AllMutations() []MutationKind {
	out := make([]MutationKind, 0, int(lastMutation))
	for k := CourseCreate; k <= lastMutation; k++ {
		out = append(out, k)
	}
	return out
}
