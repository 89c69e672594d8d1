package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleMember,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var gatePolicies = []domain.GatePolicy{
	domain.GateDisabled,
	domain.GateToday,
	domain.GateTodayAndTomorrow,
}

// 随机生成一份合法的排班配置
func GenerateRandomWorkshift(ownerEmail string) *domain.Workshift {
	shiftCount := rand.Intn(4) + 1
	hourPerShift := 24 / shiftCount

	startTimes := make([]string, shiftCount)
	for i := range startTimes {
		// 起始时刻落在各自的时段内，保证严格递增
		hour := i*hourPerShift + rand.Intn(2)
		minute := rand.Intn(60)
		startTimes[i] = fmt.Sprintf("%02d:%02d", hour, minute)
	}

	patternLength := rand.Intn(10) + 4
	var pattern strings.Builder
	for i := 0; i < patternLength; i++ {
		pattern.WriteByte(byte('0' + rand.Intn(shiftCount+1)))
	}

	patternStart := time.Now().AddDate(0, 0, -rand.Intn(365))

	return &domain.Workshift{
		Name:              "排班配置" + GenerateRandomID(3, 3),
		OwnerEmail:        ownerEmail,
		ShiftCount:        shiftCount,
		StartTimes:        startTimes,
		DurationHours:     float64(rand.Intn(hourPerShift*2) + 1),
		Pattern:           pattern.String(),
		PatternStart:      patternStart.Format("2006-01-02"),
		GatePolicy:        gatePolicies[rand.Intn(len(gatePolicies))],
		HolidaysAlwaysOff: rand.Intn(2) == 0,
	}
}

// 随机生成一个节假日，日期落在今年以内
func GenerateRandomHoliday() *domain.Holiday {
	date := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local).
		AddDate(0, 0, rand.Intn(365))

	return &domain.Holiday{
		Date: date.Format("2006-01-02"),
		Name: "节假日" + GenerateRandomID(2, 2),
	}
}
