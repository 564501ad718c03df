package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mathpath/mathpath-backend/internal/config"
	"github.com/mathpath/mathpath-backend/internal/database"
	"github.com/mathpath/mathpath-backend/internal/logger"
	"github.com/mathpath/mathpath-backend/internal/model"
	"github.com/mathpath/mathpath-backend/internal/repository"
)

// seed is one row of the starter question bank.
type seed struct {
	grade      string
	semester   int
	chapter    string
	competency model.Competency
	level      int
	prompt     string
	expr       string
	options    []string
	answer     int
	explain    string
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool, log)

	seeds := starterBank()
	fmt.Printf("=== Seeding %d Questions ===\n", len(seeds))

	successCount := 0
	for i, s := range seeds {
		q := &model.Question{
			Grade:          s.grade,
			Semester:       s.semester,
			Chapter:        s.chapter,
			Competency:     s.competency,
			Level:          s.level,
			Prompt:         s.prompt,
			MathExpression: s.expr,
			Options:        s.options,
			AnswerIndex:    s.answer,
			Explanation:    s.explain,
		}
		if err := q.Validate(); err != nil {
			fmt.Printf("Skipping invalid seed #%d: %v\n", i+1, err)
			continue
		}
		if err := questionRepo.Create(ctx, q); err != nil {
			fmt.Printf("Error creating question #%d: %v\n", i+1, err)
			continue
		}
		successCount++
		if successCount%10 == 0 {
			fmt.Printf("Created %d questions...\n", successCount)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d questions.\n", successCount, len(seeds))
}

// starterBank covers ป.4 เทอม 1 deeply enough to exercise every practice mode:
// three chapters, all six competencies, levels 1–3.
func starterBank() []seed {
	return []seed{
		// ─── บทที่: จำนวนนับและการบวกลบ ─────────────────────────────
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyNumerical, 1,
			"ข้อใดคือผลบวกของ 245 + 138", "245 + 138",
			[]string{"373", "383", "393", "483"}, 1,
			"บวกทีละหลัก: 5+8=13 ทด 1, 4+3+1=8, 2+1=3 ได้ 383"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyNumerical, 1,
			"700 − 256 เท่ากับเท่าใด", "700 - 256",
			[]string{"444", "454", "446", "544"}, 0,
			"ยืมหลัก: 700 − 256 = 444"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyNumerical, 2,
			"จำนวนใดมากที่สุด", "",
			[]string{"4,099", "4,101", "4,110", "4,089"}, 2,
			"เทียบหลักพันเท่ากัน เทียบหลักร้อยและหลักสิบ 4,110 มากที่สุด"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyLogical, 2,
			"แบบรูป 3, 6, 12, 24, ... จำนวนถัดไปคือข้อใด", "",
			[]string{"30", "36", "48", "64"}, 2,
			"แต่ละจำนวนเป็นสองเท่าของจำนวนก่อนหน้า 24 × 2 = 48"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyApplied, 2,
			"มะลิมีเงิน 500 บาท ซื้อหนังสือ 185 บาท และดินสอ 48 บาท เหลือเงินกี่บาท", "",
			[]string{"267 บาท", "277 บาท", "317 บาท", "233 บาท"}, 0,
			"500 − 185 − 48 = 267 บาท"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyAlgebraic, 2,
			"ถ้า □ + 37 = 95 แล้ว □ แทนจำนวนใด", "x + 37 = 95",
			[]string{"48", "58", "68", "132"}, 1,
			"□ = 95 − 37 = 58"},
		{"P4", 1, "จำนวนนับและการบวกลบ", model.CompetencyNumerical, 3,
			"ค่าประมาณเป็นจำนวนเต็มร้อยของ 7,449 คือข้อใด", "",
			[]string{"7,400", "7,500", "7,000", "7,450"}, 0,
			"หลักสิบเป็น 4 จึงปัดลงเป็น 7,400"},

		// ─── บทที่: การคูณและการหาร ─────────────────────────────────
		{"P4", 1, "การคูณและการหาร", model.CompetencyNumerical, 1,
			"7 × 8 เท่ากับเท่าใด", "7 \\times 8",
			[]string{"48", "54", "56", "63"}, 2,
			"สูตรคูณแม่ 7: 7 × 8 = 56"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyNumerical, 2,
			"144 ÷ 12 เท่ากับเท่าใด", "144 \\div 12",
			[]string{"11", "12", "13", "14"}, 1,
			"12 × 12 = 144 ดังนั้น 144 ÷ 12 = 12"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyAlgebraic, 2,
			"ถ้า 6 × □ = 84 แล้ว □ แทนจำนวนใด", "6x = 84",
			[]string{"12", "13", "14", "16"}, 2,
			"□ = 84 ÷ 6 = 14"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyApplied, 2,
			"ขนมกล่องละ 35 บาท ซื้อ 6 กล่อง ต้องจ่ายเงินกี่บาท", "",
			[]string{"180 บาท", "200 บาท", "210 บาท", "240 บาท"}, 2,
			"35 × 6 = 210 บาท"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyApplied, 3,
			"นักเรียน 125 คน นั่งรถบัสคันละ 40 คน ต้องใช้รถบัสอย่างน้อยกี่คัน", "",
			[]string{"3 คัน", "4 คัน", "5 คัน", "6 คัน"}, 1,
			"125 ÷ 40 = 3 เศษ 5 จึงต้องใช้ 4 คัน"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyLogical, 3,
			"จำนวนใดหารด้วย 3 ลงตัว", "",
			[]string{"124", "221", "342", "463"}, 2,
			"3 + 4 + 2 = 9 หารด้วย 3 ลงตัว ดังนั้น 342 หารด้วย 3 ลงตัว"},
		{"P4", 1, "การคูณและการหาร", model.CompetencyNumerical, 3,
			"25 × 16 เท่ากับเท่าใด", "25 \\times 16",
			[]string{"375", "400", "425", "450"}, 1,
			"25 × 16 = 25 × 4 × 4 = 100 × 4 = 400"},

		// ─── บทที่: เรขาคณิตและการวัด ───────────────────────────────
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyVisual, 1,
			"รูปสี่เหลี่ยมจัตุรัสมีด้านกี่ด้าน", "",
			[]string{"3 ด้าน", "4 ด้าน", "5 ด้าน", "6 ด้าน"}, 1,
			"สี่เหลี่ยมจัตุรัสมี 4 ด้านยาวเท่ากันทุกด้าน"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyVisual, 2,
			"มุมฉากมีขนาดกี่องศา", "",
			[]string{"45 องศา", "60 องศา", "90 องศา", "180 องศา"}, 2,
			"มุมฉากมีขนาด 90 องศา"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyVisual, 2,
			"รูปสี่เหลี่ยมผืนผ้ากว้าง 5 เซนติเมตร ยาว 8 เซนติเมตร มีเส้นรอบรูปยาวเท่าใด", "2(5 + 8)",
			[]string{"13 เซนติเมตร", "26 เซนติเมตร", "40 เซนติเมตร", "28 เซนติเมตร"}, 1,
			"เส้นรอบรูป = 2 × (กว้าง + ยาว) = 2 × 13 = 26 เซนติเมตร"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyApplied, 3,
			"สนามรูปสี่เหลี่ยมจัตุรัสด้านยาว 12 เมตร มีพื้นที่เท่าใด", "12^2",
			[]string{"48 ตารางเมตร", "100 ตารางเมตร", "144 ตารางเมตร", "124 ตารางเมตร"}, 2,
			"พื้นที่ = ด้าน × ด้าน = 12 × 12 = 144 ตารางเมตร"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyData, 1,
			"จากตาราง นักเรียนชอบสีแดง 8 คน สีฟ้า 12 คน สีเขียว 5 คน สีใดมีคนชอบมากที่สุด", "",
			[]string{"สีแดง", "สีฟ้า", "สีเขียว", "เท่ากันทุกสี"}, 1,
			"สีฟ้า 12 คน มากกว่าสีอื่น"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyData, 2,
			"แผนภูมิรูปภาพกำหนดให้ 1 รูป แทน 5 คน ถ้ามี 4 รูป แทนนักเรียนกี่คน", "",
			[]string{"9 คน", "15 คน", "20 คน", "25 คน"}, 2,
			"4 × 5 = 20 คน"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyData, 3,
			"คะแนนสอบของนักเรียน 5 คน ได้แก่ 6, 8, 7, 9, 10 ค่าเฉลี่ยคือเท่าใด", "(6+8+7+9+10) \\div 5",
			[]string{"7", "8", "9", "10"}, 1,
			"ผลรวม 40 หารด้วย 5 ได้ค่าเฉลี่ย 8"},
		{"P4", 1, "เรขาคณิตและการวัด", model.CompetencyLogical, 2,
			"นาฬิกาแสดงเวลา 14:30 น. ตรงกับข้อใด", "",
			[]string{"บ่ายสองโมงครึ่ง", "บ่ายสามโมงครึ่ง", "สองทุ่มครึ่ง", "แปดโมงครึ่ง"}, 0,
			"14:30 น. คือบ่ายสองโมงสามสิบนาที"},
	}
}
