package initial

import (
	"crypto/tls"
	"eduplace-go/pkg/models"
	"eduplace-go/pkg/search"
	"fmt"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"log"
	"net/http"
	"os"
)

var DB *gorm.DB
var Client *minio.Client

func LoadEnvComp() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env файл не найден, используются переменные окружения из системы")
	}
}

func ConDB() {
	var (
		dbHost     = os.Getenv("DB_HOST")
		dbUser     = os.Getenv("DB_USER")
		dbPassword = os.Getenv("DB_PASSWORD")
		dbName     = os.Getenv("DB_NAME")
		dbPort     = os.Getenv("DB_PORT")
	)
	fmt.Printf("DB Config: Host=%s, User=%s, DBName=%s, Port=%s\n",
		dbHost, dbUser, dbName, dbPort)

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("дб не подключается")
	}
	err = DB.Exec(`
		DO $$ BEGIN
			CREATE TYPE user_role AS ENUM ('студент', 'преподаватель', 'администратор');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;

		DO $$ BEGIN
			CREATE TYPE course_status AS ENUM ('черновик', 'на модерации', 'опубликован', 'снят с публикации');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;

		DO $$ BEGIN
			CREATE TYPE payment_status AS ENUM ('ожидает', 'оплачен', 'ошибка');
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;
	`).Error
	if err != nil {
		log.Fatalf("Ошибка создания enumов: %v", err)
	}
}

func SyncDB() {
	DB.AutoMigrate(
		&models.User{},
		&models.InstructorProfile{},
		&models.Category{},
		&models.Course{},
		&models.Section{},
		&models.Lesson{},
		&models.LessonFile{},
		&models.LessonVideo{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizOption{},
		&models.QuizAttempt{},
		&models.AttemptAnswer{},
		&models.Enrollment{},
		&models.CompletedLesson{},
		&models.Payment{},
		&models.Review{},
		&models.WishlistItem{},
		&models.ContactMessage{},
	)
}

func InitES() {
	cfg := elasticsearch.Config{
		Addresses: []string{os.Getenv("ES")},
		Username:  "elastic",
		Password:  os.Getenv("PASS_ES"),
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		panic("Ошибка подключения к ElasticSearch")
	}
	search.ES = client
}

func InitEScs() {
	var courses []models.Course
	DB.Where("is_published = ?", true).Find(&courses)
	for _, course := range courses {
		search.IndexCourse(course, course.ID)
	}
}

func InitMinio() {
	var err error
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}

	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}

	Client, err = minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		panic("Не удалось подключиться к Minio")
	}
}
