package models

import "time"

// DefaultStudentPassword is assigned to newly created students and accepted
// for the generic "student" login shortcut.
const DefaultStudentPassword = "student777"

// DefaultBonusAmount is the once-per-day coin grant.
const DefaultBonusAmount = 25

// AdminUser returns the static admin record. It is constructed fresh on
// every call so callers can never mutate the canonical identity.
func AdminUser() User {
	return User{
		ID:       "admin",
		Name:     "Admin",
		Email:    "admin@edu.uz",
		Password: "admin123",
		Role:     RoleAdmin,
		Coins:    0,
		Avatar:   "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix",
		Badges:   []string{},
	}
}

// SeedStudents is the built-in student roster used when the store holds no
// saved collection.
func SeedStudents() []User {
	return []User{
		{ID: "1", Name: "Alisher", Email: "alisher@edu.uz", Password: DefaultStudentPassword, Role: RoleStudent, Coins: 150, Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Alisher", Badges: []string{}},
		{ID: "2", Name: "Zuxra", Email: "zuhra@edu.uz", Password: DefaultStudentPassword, Role: RoleStudent, Coins: 620, Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Zuhra", Badges: []string{}},
		{ID: "3", Name: "Javohir", Email: "javohir@edu.uz", Password: DefaultStudentPassword, Role: RoleStudent, Coins: 85, Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Javohir", Badges: []string{}},
	}
}

// SeedTasks returns the built-in assignments, active for TaskLifetime from
// the provided instant.
func SeedTasks(now time.Time) []Task {
	expires := now.Add(TaskLifetime).UnixMilli()
	return []Task{
		{ID: "t1", Title: "Uyga vazifani vaqtida topshirish", Coins: 20, Category: "O`qish", ExpiresAt: expires, Link: "https://google.com"},
		{ID: "t2", Title: "Darsda faol qatnashish", Coins: 10, Category: "Faollik", ExpiresAt: expires, Link: "https://youtube.com"},
		{ID: "t3", Title: "Jamoaviy loyihada qatnashish", Coins: 50, Category: "Loyiha", ExpiresAt: expires, Link: "https://github.com"},
		{ID: "t4", Title: "Kod yozish musobaqasi g`olibi", Coins: 500, Category: "IT Challenge", ExpiresAt: expires, Link: "https://leetcode.com"},
	}
}

// RewardCatalog is the immutable shop inventory.
func RewardCatalog() []Reward {
	return []Reward{
		{ID: "r1", Title: "5 baho bonus", Description: "Darsdagi faollik uchun sertifikat", Cost: 100, Icon: "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryEdu},
		{ID: "r2", Title: "Vazifadan ozod", Description: "Bitta vazifani topshirmaslik pass-kartasi", Cost: 500, Icon: "https://images.unsplash.com/photo-1517842645767-c639042777db?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryEdu},
		{ID: "r3", Title: "IT Sticker Pack", Description: "Noutbuk uchun Developer stikerlari", Cost: 50, Icon: "https://images.unsplash.com/photo-1589149098258-3e9102ca93d3?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryTech},
		{ID: "r5", Title: "Gaming Mouse", Description: "RGB professional sichqoncha", Cost: 1200, Icon: "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryTech},
		{ID: "r6", Title: "IT Headphones", Description: "Shovqin qaytaruvchi quloqchin", Cost: 2500, Icon: "https://images.unsplash.com/photo-1484704849700-f032a568e944?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryTech},
		{ID: "r7", Title: "Mechanical Keyboard", Description: "RGB mexanik klaviatura", Cost: 4000, Icon: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryTech},
		{ID: "r8", Title: "MacBook Air M3", Description: "Professional o`quvchilar uchun super mukofot", Cost: 50000, Icon: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?q=80&w=300&auto=format&fit=crop", Category: RewardCategoryTech},
	}
}
