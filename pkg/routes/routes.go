package routes

import (
	"eduplace-go/pkg/admin"
	"eduplace-go/pkg/categories"
	"eduplace-go/pkg/courses"
	"eduplace-go/pkg/documents"
	"eduplace-go/pkg/enrollment"
	"eduplace-go/pkg/goauth"
	"eduplace-go/pkg/lessons"
	"eduplace-go/pkg/payments"
	"eduplace-go/pkg/quizzes"
	"eduplace-go/pkg/reviews"
	"eduplace-go/pkg/search"
	"eduplace-go/pkg/sections"
	"eduplace-go/pkg/wishlist"
	"github.com/gorilla/mux"
)

func SetupAuth(h *mux.Router) {
	reg := goauth.ConstructorReg()
	code := goauth.ConstructorCode()
	h.HandleFunc("/api/send/register", reg.SendEmail).Methods("POST")
	h.HandleFunc("/api/auth/verify", code.SignUp).Methods("POST")
	h.HandleFunc("/api/auth/login", goauth.Login).Methods("POST")
	h.HandleFunc("/api/auth/logout", goauth.Logout).Methods("POST")
	h.HandleFunc("/api/verifyinstructor/{id}", goauth.VerifyInstructor)
}

// SetupPublic: вебхук шлюза и форма обратной связи работают без куки.
func SetupPublic(h *mux.Router) {
	h.HandleFunc("/api/payments/webhook", payments.Webhook).Methods("POST")
	h.HandleFunc("/api/contact", admin.CreateContactMessage).Methods("POST")
}

func SetupMe(h *mux.Router) {
	verify := goauth.Constructor()
	h.HandleFunc("/me", goauth.Me).Methods("GET")
	h.HandleFunc("/me/update", goauth.UpdateMe).Methods("PUT")
	h.HandleFunc("/me/instructor", verify.SendVerInstructor).Methods("POST")
	h.HandleFunc("/me/enrollments", enrollment.GetMyEnrollments).Methods("GET")
	h.HandleFunc("/me/payments", payments.GetMyPayments).Methods("GET")
	h.HandleFunc("/me/wishlist", wishlist.GetMy).Methods("GET")
}

func SetupCategories(h *mux.Router) {
	h.HandleFunc("/tree", categories.GetTree).Methods("GET")
	h.HandleFunc("", categories.GetAll).Methods("GET")
	h.HandleFunc("", categories.Create).Methods("POST")
	h.HandleFunc("/{id}", categories.GetByID).Methods("GET")
	h.HandleFunc("/{id}", categories.Update).Methods("PUT")
	h.HandleFunc("/{id}", categories.Delete).Methods("DELETE")
	h.HandleFunc("/{id}/deactivate", categories.Deactivate).Methods("PUT")
	h.HandleFunc("/{id}/restore", categories.Restore).Methods("PUT")
}

func SetupCourses(h *mux.Router) {
	h.HandleFunc("/search", search.SearchCourses).Methods("GET")
	h.HandleFunc("/search/deep", search.SearchCoursesDeep).Methods("GET")
	h.HandleFunc("", courses.GetAll).Methods("GET")
	h.HandleFunc("", courses.Create).Methods("POST")
	h.HandleFunc("/my", courses.GetInstructorCourses).Methods("GET")
	h.HandleFunc("/slug/{slug}", courses.GetBySlug).Methods("GET")
	h.HandleFunc("/{id}", courses.GetByID).Methods("GET")
	h.HandleFunc("/{id}", courses.Update).Methods("PUT")
	h.HandleFunc("/{id}", courses.Delete).Methods("DELETE")
	h.HandleFunc("/{id}/details", courses.GetCourseDetails).Methods("GET")
	h.HandleFunc("/{id}/publish", courses.Publish).Methods("PUT")
	h.HandleFunc("/{id}/unpublish", courses.Unpublish).Methods("PUT")
	h.HandleFunc("/{courseID}/enroll", enrollment.EnrollInCourse).Methods("POST")
	h.HandleFunc("/{courseID}/pay", payments.CreatePayment).Methods("POST")
	h.HandleFunc("/{courseID}/reviews", reviews.GetCourseReviews).Methods("GET")
	h.HandleFunc("/{courseID}/reviews", reviews.Create).Methods("POST")
	h.HandleFunc("/{courseID}/wishlist", wishlist.Add).Methods("POST")
	h.HandleFunc("/{courseID}/wishlist", wishlist.Remove).Methods("DELETE")
}

func SetupSections(h *mux.Router) {
	h.HandleFunc("/sections", sections.CreateSection).Methods("POST")
	h.HandleFunc("/sections", sections.GetSections).Methods("GET")
	h.HandleFunc("/sections/{id}", sections.GetSection).Methods("GET")
	h.HandleFunc("/sections/{id}", sections.UpdateSection).Methods("PUT")
	h.HandleFunc("/sections/{id}", sections.DeactivateSection).Methods("DELETE")
}

func SetupLessons(h *mux.Router) {
	h.HandleFunc("/sections/{sectionID}/lessons", lessons.CreateLes).Methods("POST")
	h.HandleFunc("/sections/{sectionID}/lessons", lessons.GetLessons).Methods("GET")
	h.HandleFunc("/sections/{sectionID}/lessons/{id}", lessons.UpdateLes).Methods("PUT")
	h.HandleFunc("/lessons/{lessonID}/upload", documents.UploadDoc).Methods("POST")
	h.HandleFunc("/lessons/{lessonID}/upload/video", documents.UploadVideo).Methods("POST")
	h.HandleFunc("/lessons/{lessonID}/download/{id}", documents.DownloadDoc).Methods("GET")
	h.HandleFunc("/lessons/{lessonID}/stream/{id}", documents.StreamVideo).Methods("GET")
	h.HandleFunc("/lessons/{lessonID}/complete", enrollment.CompleteLesson).Methods("POST")
	h.HandleFunc("/lessons/{id}", lessons.GetLesson).Methods("GET")
	h.HandleFunc("/lessons/{id}", lessons.DeactivateLesson).Methods("DELETE")
}

func SetupQuizzes(h *mux.Router) {
	h.HandleFunc("/quiz", quizzes.CreateQuiz).Methods("POST")
	h.HandleFunc("/quiz", quizzes.GetLessonQuiz).Methods("GET")
	h.HandleFunc("/quiz/{id}", quizzes.GetQuiz).Methods("GET")
	h.HandleFunc("/quiz/{id}", quizzes.UpdateQuiz).Methods("PUT")
	h.HandleFunc("/quiz/{id}", quizzes.DeleteQuiz).Methods("DELETE")
	h.HandleFunc("/quiz/{quizID}/questions", quizzes.CreateQ).Methods("POST")
	h.HandleFunc("/quiz/{quizID}/questions", quizzes.GetQs).Methods("GET")
	h.HandleFunc("/quiz/{quizID}/questions/{id}", quizzes.GetQ).Methods("GET")
	h.HandleFunc("/quiz/{quizID}/questions/{id}", quizzes.UpdateQ).Methods("PUT")
	h.HandleFunc("/quiz/{quizID}/questions/{id}", quizzes.DeleteQ).Methods("DELETE")
	h.HandleFunc("/quiz/{quizID}/attempts", quizzes.SubmitAttempt).Methods("POST")
	h.HandleFunc("/quiz/{quizID}/attempts", quizzes.GetMyAttempts).Methods("GET")
	h.HandleFunc("/quiz/{quizID}/attempts/best", quizzes.GetBestAttempt).Methods("GET")
}

func SetupEnrollment(h *mux.Router) {
	h.HandleFunc("/enrollments/{id}", enrollment.GetEnrollment).Methods("GET")
	h.HandleFunc("/payments/{id}", payments.GetPayment).Methods("GET")
	h.HandleFunc("/reviews/{id}", reviews.Update).Methods("PUT")
	h.HandleFunc("/reviews/{id}", reviews.Delete).Methods("DELETE")
}

func SetupAdmin(h *mux.Router) {
	h.HandleFunc("/admin/users", admin.GetUsers).Methods("GET")
	h.HandleFunc("/admin/instructors", admin.GetInstructors).Methods("GET")
	h.HandleFunc("/admin/contact", admin.GetContactMessages).Methods("GET")
	h.HandleFunc("/admin/contact/{id}", admin.ReadContactMessage).Methods("GET")
	h.HandleFunc("/admin/contact/{id}", admin.DeleteContactMessage).Methods("DELETE")
}
