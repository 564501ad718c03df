package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_TAKEN"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Practice-specific ─────────────────────────────────────────────
	ErrNoQuestions      ErrCode = "NO_QUESTIONS_AVAILABLE"
	ErrNoActiveSession  ErrCode = "NO_ACTIVE_SESSION"
	ErrRunNotFinished   ErrCode = "RUN_NOT_FINISHED"
	ErrRunFinished      ErrCode = "RUN_ALREADY_FINISHED"
	ErrAlreadyAnswered  ErrCode = "ALREADY_ANSWERED"
	ErrAnswerOutOfRange ErrCode = "ANSWER_OUT_OF_RANGE"
	ErrInvalidQuestion  ErrCode = "INVALID_QUESTION"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrBackendUnavailable ErrCode = "BACKEND_UNAVAILABLE"
	ErrInternal           ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable (Thai) message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "อีเมลหรือรหัสผ่านไม่ถูกต้อง"
	case ErrEmailTaken:
		return "อีเมลนี้ถูกใช้งานแล้ว"
	case ErrSessionActive:
		return "บัญชีนี้กำลังใช้งานอยู่บนอุปกรณ์อื่น"
	case ErrSessionInvalidated:
		return "เซสชันของคุณหมดอายุ กรุณาเข้าสู่ระบบใหม่"
	case ErrTokenRequired:
		return "ต้องมีโทเคนยืนยันตัวตน"
	case ErrTokenInvalid:
		return "โทเคนยืนยันตัวตนไม่ถูกต้อง"
	case ErrTokenExpired:
		return "โทเคนยืนยันตัวตนหมดอายุ"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "คุณไม่มีสิทธิ์เข้าถึงส่วนนี้"
	case ErrStudentAccessOnly:
		return "ส่วนนี้สำหรับนักเรียนเท่านั้น"
	case ErrTeacherAccessOnly:
		return "ส่วนนี้สำหรับครูเท่านั้น"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "ข้อมูลไม่ถูกต้อง กรุณาตรวจสอบอีกครั้ง"
	case ErrInvalidID:
		return "รูปแบบรหัสไม่ถูกต้อง"
	case ErrInvalidPayload:
		return "รูปแบบคำขอไม่ถูกต้อง"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "ไม่พบข้อมูลที่ต้องการ"
	case ErrConflict:
		return "มีข้อมูลนี้อยู่แล้ว"

	// ─── Practice-specific ─────────────────────────────────────────────
	case ErrNoQuestions:
		return "ไม่มีโจทย์สำหรับระดับชั้นและบทเรียนที่เลือก"
	case ErrNoActiveSession:
		return "ยังไม่ได้เริ่มทำแบบฝึกหัด"
	case ErrRunNotFinished:
		return "ยังทำแบบฝึกหัดไม่ครบทุกข้อ"
	case ErrRunFinished:
		return "แบบฝึกหัดชุดนี้จบแล้ว"
	case ErrAlreadyAnswered:
		return "ข้อนี้ตอบไปแล้ว"
	case ErrAnswerOutOfRange:
		return "ตัวเลือกที่ส่งมาไม่อยู่ในช่วงคำตอบ"
	case ErrInvalidQuestion:
		return "ข้อมูลโจทย์ไม่ถูกต้อง"

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "ต้องแนบไฟล์"
	case ErrUnsupportedFile:
		return "ไม่รองรับไฟล์ประเภทนี้"
	case ErrFileTooLarge:
		return "ไฟล์มีขนาดใหญ่เกินกำหนด"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "ส่งคำขอบ่อยเกินไป กรุณาลองใหม่ภายหลัง"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrBackendUnavailable:
		return "ระบบจัดเก็บข้อมูลขัดข้องชั่วคราว"
	case ErrInternal:
		return "เกิดข้อผิดพลาดภายในระบบ"
	default:
		return "เกิดข้อผิดพลาดที่ไม่คาดคิด"
	}
}
