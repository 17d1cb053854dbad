package constants

// Vai trò người dùng trên nền tảng
const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_ORGANIZER = "ORGANIZER"
	ROLE_EXHIBITOR = "EXHIBITOR"
	ROLE_SPEAKER   = "SPEAKER"
	ROLE_VENUE     = "VENUE"
	ROLE_ATTENDEE  = "ATTENDEE"
)

// Trạng thái khuyến mãi / quảng bá
const (
	PROMOTION_PENDING   = "PENDING"
	PROMOTION_APPROVED  = "APPROVED"
	PROMOTION_REJECTED  = "REJECTED"
	PROMOTION_ACTIVE    = "ACTIVE"
	PROMOTION_COMPLETED = "COMPLETED"
	PROMOTION_EXPIRED   = "EXPIRED"
)

// Trạng thái lịch hẹn
const (
	APPOINTMENT_NEW       = "NEW"
	APPOINTMENT_CONTACTED = "CONTACTED"
	APPOINTMENT_CONFIRMED = "CONFIRMED"
	APPOINTMENT_COMPLETED = "COMPLETED"
	APPOINTMENT_CANCELLED = "CANCELLED"
	APPOINTMENT_REJECTED  = "REJECTED"
)

// Loại quan hệ (cạnh) giữa hai người dùng
const (
	EDGE_FOLLOW = "FOLLOW"
	EDGE_LIKE   = "LIKE"
)

// Trạng thái sự kiện
const (
	EVENT_DRAFT     = "DRAFT"
	EVENT_PUBLISHED = "PUBLISHED"
	EVENT_CANCELLED = "CANCELLED"
)

// Thông báo lỗi dùng chung
const (
	ERROR_INTERNAL_ERROR       = "Lỗi hệ thống, vui lòng thử lại sau"
	ERROR_CREATE               = "Tạo mới thất bại"
	ERROR_EDIT                 = "Cập nhật thất bại"
	ERROR_DELETE               = "Xoá thất bại"
	ERROR_INPUT                = "Dữ liệu đầu vào không hợp lệ"
	ERROR_PARSE_DATA_TO_LOCALS = "Lỗi parse dữ liệu"
	DATA_INPUT_IS_NOT_NUMBER   = "Tham số phải là số"
	NOT_FOUND_RECORDS          = "Không tìm thấy dữ liệu"
	MISSING_LOGIN_INPUT        = "Thiếu thông tin đăng nhập"
	INVALID_EMAIL              = "Email không tồn tại"
	INVALID_PASSWORD           = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE         = "Tài khoản đã bị khoá"
	CAN_NOT_HASH_PASSWORD      = "Không thể mã hoá mật khẩu"
	NO_PERMISSION              = "Không có quyền thực hiện thao tác này"
	NOT_LOGGED_IN              = "Vui lòng đăng nhập"
)
