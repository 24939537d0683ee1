package main

import (
	"time"

	"github.com/khoborpatra/khoborpatra/internal/config"
	"github.com/khoborpatra/khoborpatra/internal/constants"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "National", NameBn: "জাতীয়", Slug: "national", DisplayOrder: 1, IsActive: true},
		{Name: "International", NameBn: "আন্তর্জাতিক", Slug: "international", DisplayOrder: 2, IsActive: true},
		{Name: "Sports", NameBn: "খেলাধুলা", Slug: "sports", DisplayOrder: 3, IsActive: true},
		{Name: "Entertainment", NameBn: "বিনোদন", Slug: "entertainment", DisplayOrder: 4, IsActive: true},
		{Name: "Technology", NameBn: "প্রযুক্তি", Slug: "technology", DisplayOrder: 5, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	password, err := bcrypt.GenerateFromPassword([]byte("khobor123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}
	users := []models.User{
		{Email: "editor@khoborpatra.example", Name: "Rahim Uddin", NameBn: "রহিম উদ্দিন", Role: constants.UserRoleEditor, IsActive: true, Password: string(password)},
		{Email: "reporter@khoborpatra.example", Name: "Salma Akter", NameBn: "সালমা আক্তার", Role: constants.UserRoleReporter, IsActive: true, Password: string(password)},
	}
	userIDs := map[string]uint{}
	for _, user := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s", user.Email)
			userIDs[user.Email] = user.ID
		} else {
			stdLog.Printf("User already exists: %s", user.Email)
			userIDs[user.Email] = existing.ID
		}
	}

	tags := []models.Tag{
		{Name: "Cricket", NameBn: "ক্রিকেট", Slug: "cricket", Color: "#16A34A", IsActive: true},
		{Name: "Election", NameBn: "নির্বাচন", Slug: "election", Color: "#DC2626", IsActive: true},
		{Name: "Dhaka", NameBn: "ঢাকা", Slug: "dhaka", Color: "#3B82F6", IsActive: true},
	}
	tagIDs := map[string]uint{}
	for _, tag := range tags {
		var existing models.Tag
		if err := models.DB.Where("slug = ?", tag.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tag).Error; err != nil {
				stdLog.Printf("Failed to create tag %s: %v", tag.Slug, err)
				continue
			}
			stdLog.Printf("Created tag: %s", tag.Slug)
			tagIDs[tag.Slug] = tag.ID
		} else {
			stdLog.Printf("Tag already exists: %s", tag.Slug)
			tagIDs[tag.Slug] = existing.ID
		}
	}

	sportsID := categoryIDs["sports"]
	reporterID := userIDs["reporter@khoborpatra.example"]
	editorID := userIDs["editor@khoborpatra.example"]
	now := time.Now()
	articles := []struct {
		article models.Article
		tags    []string
	}{
		{
			article: models.Article{
				Title:       "Bangladesh Clinch Series With Last-Over Win",
				TitleBn:     "শেষ ওভারের জয়ে সিরিজ বাংলাদেশের",
				Slug:        "bangladesh-clinch-series-last-over-win",
				Excerpt:     "A five-wicket haul and a calm final over sealed the home series.",
				ExcerptBn:   "পাঁচ উইকেট আর ঠান্ডা মাথার শেষ ওভারে ঘরের মাঠে সিরিজ জয়।",
				Content:     "<p>Bangladesh sealed the one-day series with a last-over win at Mirpur on Sunday.</p>",
				ContentBn:   "<p>রবিবার মিরপুরে শেষ ওভারের জয়ে ওয়ানডে সিরিজ নিশ্চিত করল বাংলাদেশ।</p>",
				CategoryID:  &sportsID,
				AuthorID:    &reporterID,
				EditorID:    &editorID,
				Status:      constants.ArticleStatusPublished,
				IsPublished: true,
				PublishedAt: &now,
				IsFeatured:  true,
				IsBreaking:  true,
				Priority:    9,
				Location:    "Dhaka",
				LocationBn:  "ঢাকা",
			},
			tags: []string{"cricket", "dhaka"},
		},
		{
			article: models.Article{
				Title:       "Commission Publishes Draft Voter Roll",
				TitleBn:     "খসড়া ভোটার তালিকা প্রকাশ করল কমিশন",
				Slug:        "commission-publishes-draft-voter-roll",
				Excerpt:     "The draft roll is open for corrections for thirty days.",
				ExcerptBn:   "ত্রিশ দিন সংশোধনের জন্য খোলা থাকবে খসড়া তালিকা।",
				Content:     "<p>The election commission published the draft voter roll on Thursday.</p>",
				ContentBn:   "<p>বৃহস্পতিবার খসড়া ভোটার তালিকা প্রকাশ করেছে নির্বাচন কমিশন।</p>",
				CategoryID:  uintPtr(categoryIDs["national"]),
				AuthorID:    &reporterID,
				Status:      constants.ArticleStatusPublished,
				IsPublished: true,
				PublishedAt: &now,
				Priority:    6,
			},
			tags: []string{"election"},
		},
	}
	for _, item := range articles {
		var existing models.Article
		if err := models.DB.Where("slug = ?", item.article.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Article already exists: %s", item.article.Slug)
			continue
		}
		article := item.article
		tagNames := item.tags
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Tags", "Category", "Author", "Editor").Create(&article).Error; err != nil {
				return err
			}
			for _, slug := range tagNames {
				tagID, ok := tagIDs[slug]
				if !ok {
					continue
				}
				if err := tx.Create(&models.ArticleTag{ArticleID: article.ID, TagID: tagID}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			stdLog.Printf("Failed to create article %s: %v", article.Slug, err)
			continue
		}
		stdLog.Printf("Created article: %s", article.Slug)
	}

	var seededArticle models.Article
	if err := models.DB.Where("slug = ?", "bangladesh-clinch-series-last-over-win").First(&seededArticle).Error; err == nil {
		var commentCount int64
		models.DB.Model(&models.Comment{}).Where("article_id = ?", seededArticle.ID).Count(&commentCount)
		if commentCount == 0 {
			comment := models.Comment{
				ArticleID:  seededArticle.ID,
				AuthorName: "Kamal Hossain",
				Content:    "What a finish! Well played.",
				ContentBn:  "কী দারুণ ফিনিশ! চমৎকার খেলেছে।",
				IsApproved: true,
			}
			if err := models.DB.Create(&comment).Error; err != nil {
				stdLog.Printf("Failed to create comment: %v", err)
			} else {
				models.DB.Model(&models.Article{}).Where("id = ?", seededArticle.ID).Update("comment_count", 1)
				stdLog.Printf("Created comment on: %s", seededArticle.Slug)
			}
		}
	}

	ads := []models.Advertisement{
		{
			Title:    "Boishakhi Sale",
			ClickURL: "https://shop.example/boishakhi",
			ImageURL: "https://cdn.example/ads/boishakhi.png",
			Position: constants.AdPositionHeader,
			IsActive: true,
		},
	}
	for _, ad := range ads {
		var existing models.Advertisement
		if err := models.DB.Where("title = ?", ad.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&ad).Error; err != nil {
				stdLog.Printf("Failed to create advertisement %s: %v", ad.Title, err)
			} else {
				stdLog.Printf("Created advertisement: %s", ad.Title)
			}
		} else {
			stdLog.Printf("Advertisement already exists: %s", ad.Title)
		}
	}

	var subscriber models.Newsletter
	if err := models.DB.Where("email = ?", "reader@example.com").First(&subscriber).Error; err != nil {
		subscriber = models.Newsletter{
			Email:       "reader@example.com",
			Name:        "Demo Reader",
			IsActive:    true,
			Preferences: models.JSON(map[string]interface{}{"categories": []string{"sports", "national"}}),
		}
		if err := models.DB.Create(&subscriber).Error; err != nil {
			stdLog.Printf("Failed to create newsletter subscriber: %v", err)
		} else {
			stdLog.Printf("Created newsletter subscriber: %s", subscriber.Email)
		}
	} else {
		stdLog.Printf("Newsletter subscriber already exists: %s", subscriber.Email)
	}

	stdLog.Printf("Seed finished")
}

func uintPtr(v uint) *uint {
	return &v
}
