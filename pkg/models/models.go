package models

import (
	"gorm.io/gorm"
	"time"
)

type User struct {
	gorm.Model
	Name        string
	Secondname  string
	Email       string `gorm:"unique;not null"`
	Password    string `gorm:"not null"`
	Role        string `gorm:"type:user_role;default:'студент'"`
	Enrollments []Enrollment   `gorm:"foreignKey:UserID"`
	Payments    []Payment      `gorm:"foreignKey:UserID"`
	Reviews     []Review       `gorm:"foreignKey:UserID"`
	Wishlist    []WishlistItem `gorm:"foreignKey:UserID"`
}

type InstructorProfile struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex;not null"`
	Bio           string
	Approved      bool     `gorm:"default:false"`
	CoursesCount  int      `gorm:"default:0"`
	StudentsCount int      `gorm:"default:0"`
	Courses       []Course `gorm:"foreignKey:InstructorID"`
}

type Category struct {
	gorm.Model
	NameRu        string `gorm:"not null"`
	NameEn        string
	DescriptionRu string
	DescriptionEn string
	// слаг уникален в рамках одного родителя
	Slug         string `gorm:"index:idx_cat_slug_parent,unique,composite:slugparent;not null"`
	ParentID     *uint  `gorm:"index:idx_cat_slug_parent,unique,composite:slugparent"`
	Order        int    `gorm:"default:0"`
	IsActive     bool   `gorm:"default:true"`
	CoursesCount int    `gorm:"default:0"`
	Children     []Category `gorm:"foreignKey:ParentID"`
	Courses      []Course   `gorm:"foreignKey:CategoryID"`
}

type Course struct {
	gorm.Model
	TitleRu       string `gorm:"not null"`
	TitleEn       string
	DescriptionRu string
	DescriptionEn string
	Slug          string  `gorm:"unique;not null"`
	Price         float64 `gorm:"not null;default:0"`
	DiscountPrice float64 `gorm:"default:0"`
	InstructorID  uint    `gorm:"index;not null"`
	CategoryID    uint    `gorm:"index;not null"`
	IsPublished   bool    `gorm:"default:false"`
	Status        string  `gorm:"type:course_status;default:'черновик'"`
	Rating        float64 `gorm:"default:0"`
	TotalReviews  int     `gorm:"default:0"`
	EnrollmentCount int   `gorm:"default:0"`
	Sections    []Section    `gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID"`
	Reviews     []Review     `gorm:"foreignKey:CourseID"`
	Payments    []Payment    `gorm:"foreignKey:CourseID"`
}

type Section struct {
	gorm.Model
	CourseID uint   `gorm:"index;not null"`
	Title    string `gorm:"not null"`
	Order    int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`
	Lessons  []Lesson `gorm:"foreignKey:SectionID"`
}

type Lesson struct {
	gorm.Model
	SectionID   uint   `gorm:"index;not null"`
	CourseID    uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	Description string
	Order       int  `gorm:"default:0"`
	IsActive    bool `gorm:"default:true"`
	IsFree      bool `gorm:"default:false"`
	Files       []LessonFile  `gorm:"foreignKey:LessonID"`
	Videos      []LessonVideo `gorm:"foreignKey:LessonID"`
	Quiz        *Quiz         `gorm:"foreignKey:LessonID"`
}

type LessonFile struct {
	gorm.Model
	CourseID uint    `gorm:"index;not null"`
	LessonID uint    `gorm:"index;not null"`
	FileName string  `gorm:"not null"`
	FileType string  `gorm:"not null"`
	FilePath string  `gorm:"not null"`
	FileSize float64 `gorm:"not null"`
}

type LessonVideo struct {
	gorm.Model
	CourseID uint    `gorm:"index;not null"`
	LessonID uint    `gorm:"index;not null"`
	FileName string  `gorm:"not null"`
	FileType string  `gorm:"not null"`
	FilePath string  `gorm:"not null"`
	FileSize float64 `gorm:"not null"`
	Duration int
}

type Quiz struct {
	gorm.Model
	LessonID      uint   `gorm:"uniqueIndex;not null"`
	Title         string `gorm:"not null"`
	Description   string
	TotalAttempts int `gorm:"default:1"`
	TotalScore    int `gorm:"default:0"`
	Questions     []QuizQuestion `gorm:"foreignKey:QuizID"`
	Attempts      []QuizAttempt  `gorm:"foreignKey:QuizID"`
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `gorm:"index;not null"`
	Question      string `gorm:"not null"`
	Order         int    `gorm:"default:0"`
	CorrectOption int    `gorm:"not null"`
	Score         int    `gorm:"default:1"`
	Options       []QuizOption `gorm:"foreignKey:QuestionID"`
}

type QuizOption struct {
	gorm.Model
	QuestionID uint   `gorm:"index;not null"`
	Text       string `gorm:"not null"`
	Order      int    `gorm:"default:0"`
}

type QuizAttempt struct {
	gorm.Model
	UserID        uint `gorm:"index:idx_attempt_user_quiz;not null"`
	QuizID        uint `gorm:"index:idx_attempt_user_quiz;not null"`
	LessonID      uint `gorm:"index;not null"`
	Attempt       int  `gorm:"default:1"`
	ObtainedScore int
	TotalScore    int
	Percentage    int
	Answers       []AttemptAnswer `gorm:"foreignKey:QuizAttemptID"`
}

type AttemptAnswer struct {
	gorm.Model
	QuizAttemptID uint `gorm:"index;not null"`
	QuestionID    uint `gorm:"not null"`
	Selected      int
	Correct       bool
	Score         int
}

type Enrollment struct {
	gorm.Model
	UserID         uint `gorm:"index:idx_enroll_user_course,unique;not null"`
	CourseID       uint `gorm:"index:idx_enroll_user_course,unique;not null"`
	Progress       int  `gorm:"default:0"`
	CompletedAt    *time.Time
	LastAccessedAt time.Time
	CompletedLessons []CompletedLesson `gorm:"foreignKey:EnrollmentID"`
}

type CompletedLesson struct {
	gorm.Model
	EnrollmentID uint `gorm:"index:idx_done_enr_lesson,unique;not null"`
	LessonID     uint `gorm:"index:idx_done_enr_lesson,unique;not null"`
}

type Payment struct {
	gorm.Model
	UserID          uint    `gorm:"index:idx_pay_user_course,unique;not null"`
	CourseID        uint    `gorm:"index:idx_pay_user_course,unique;not null"`
	Amount          float64 `gorm:"not null"`
	MerchantOrderID string  `gorm:"uniqueIndex;not null"`
	TransactionID   string
	Status          string `gorm:"type:payment_status;default:'ожидает'"`
	PaidAt          *time.Time
}

type Review struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_review_user_course,unique;not null"`
	CourseID uint `gorm:"index:idx_review_user_course,unique;not null"`
	Rating   int  `gorm:"not null"`
	Text     string
}

type WishlistItem struct {
	gorm.Model
	UserID   uint `gorm:"index:idx_wish_user_course,unique;not null"`
	CourseID uint `gorm:"index:idx_wish_user_course,unique;not null"`
}

type ContactMessage struct {
	gorm.Model
	Name   string `gorm:"not null"`
	Email  string `gorm:"not null"`
	Text   string `gorm:"not null"`
	IsRead bool   `gorm:"default:false"`
}
