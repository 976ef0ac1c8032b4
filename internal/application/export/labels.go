package export

import "github.com/jhoicas/obras-api/internal/domain/entity"

// columnLabels encabezados visibles de las tablas planas y del libro por obra.
var columnLabels = map[string]string{
	"id":                          "번호",
	"site_id":                     "현장번호",
	"project_no":                  "프로젝트 번호",
	"construction_company":        "건설사",
	"site_name":                   "현장명",
	"address":                     "주소",
	"detail_address":              "상세주소",
	"household_count":             "세대수",
	"registration_date":           "등록일",
	"delivery_date":               "납품일",
	"completion_date":             "준공일",
	"certification_audit":         "인증심사",
	"home_iot":                    "홈IoT",
	"product_bi":                  "제품 BI",
	"notes":                       "비고",
	"network_subscription":        "네트워크 가입",
	"network_subscription_period": "네트워크 가입기간",
	"created_by":                  "등록자",
	"created_at":                  "등록일시",
	"updated_at":                  "수정일시",

	"pm_name":                    "PM",
	"pm_phone":                   "PM 연락처",
	"sales_manager_name":         "영업 담당",
	"sales_manager_phone":        "영업 담당 연락처",
	"construction_manager_name":  "시공 담당",
	"construction_manager_phone": "시공 담당 연락처",
	"installer_name":             "설치 담당",
	"installer_phone":            "설치 담당 연락처",
	"network_manager_name":       "네트워크 담당",
	"network_manager_phone":      "네트워크 담당 연락처",
	"category":                   "구분",
	"name":                       "이름",
	"phone":                      "연락처",
	"sort_order":                 "순서",

	"wallpad_model":       "월패드 모델",
	"wallpad_qty":         "월패드 수량",
	"doorphone_model":     "도어폰 모델",
	"doorphone_qty":       "도어폰 수량",
	"lobbyphone_model":    "로비폰 모델",
	"lobbyphone_qty":      "로비폰 수량",
	"guardphone_model":    "경비실기 모델",
	"guardphone_qty":      "경비실기 수량",
	"magnet_sensor_model": "자석감지기 모델",
	"magnet_sensor_qty":   "자석감지기 수량",
	"motion_sensor_model": "동체감지기 모델",
	"motion_sensor_qty":   "동체감지기 수량",
	"opener_model":        "개폐기 모델",
	"opener_qty":          "개폐기 수량",

	"content":         "작업 내용",
	"status":          "상태",
	"alarm_date":      "알람일",
	"alarm_confirmed": "알람 확인",
	"done_date":       "완료일",

	"title":        "제목",
	"url":          "URL",
	"storage_path": "저장 경로",
	"uploaded_at":  "업로드일시",

	"integration_type": "연동 항목",
	"enabled":          "사용",
	"company_name":     "업체명",
	"contact_person":   "담당자",
	"contact_phone":    "담당자 연락처",
}

// integrationLabels nombre visible de cada tipo de integración.
var integrationLabels = map[string]string{
	"lighting_sw":        "일괄소등 스위치",
	"standby_power_sw":   "대기전력 차단 스위치",
	"gas_detector":       "가스 감지기",
	"heating":            "난방",
	"ventilation":        "환기",
	"door_lock":          "도어록",
	"air_conditioner":    "에어컨",
	"real_time_metering": "실시간 검침",
	"environment_sensor": "환경 센서",
	"vpn":                "VPN",
	"all_off_switch":     "일괄 차단 스위치",
	"bathroom_phone":     "욕실폰",
	"kitchen_tv":         "주방 TV",

	"parking_control":  "주차 관제",
	"remote_metering":  "원격 검침",
	"cctv":             "CCTV",
	"elevator":         "엘리베이터",
	"parcel":           "무인 택배",
	"ev_charger":       "전기차 충전기",
	"parking_location": "주차 위치 확인",
	"onepass":          "원패스",
	"rf_card":          "RF 카드",
}

var (
	contactCategoryLabels = map[string]string{
		entity.ContactSales:        "영업",
		entity.ContactConstruction: "시공",
		entity.ContactInstaller:    "설치",
		entity.ContactNetwork:      "네트워크",
	}
	statusLabels = map[string]string{
		entity.WorkStatusTodo: "진행중",
		entity.WorkStatusDone: "완료",
	}
	slotLabels = map[string]string{
		entity.SlotWallpad:      "월패드",
		entity.SlotDoorphone:    "도어폰",
		entity.SlotLobbyphone:   "로비폰",
		entity.SlotGuardphone:   "경비실기",
		entity.SlotMagnetSensor: "자석감지기",
		entity.SlotMotionSensor: "동체감지기",
		entity.SlotOpener:       "개폐기",
	}
)

var (
	columnKeys      = invert(columnLabels)
	integrationKeys = invert(integrationLabels)
)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ColumnLabel encabezado visible de key; key si no tiene etiqueta.
func ColumnLabel(key string) string {
	return lookup(columnLabels, key)
}

// ColumnKey inversa de ColumnLabel.
func ColumnKey(label string) (string, bool) {
	k, ok := columnKeys[label]
	return k, ok
}

// IntegrationLabel nombre visible del tipo; el propio tipo si no es conocido.
func IntegrationLabel(typ string) string {
	return lookup(integrationLabels, typ)
}

// IntegrationType inversa de IntegrationLabel; devuelve label si no es una etiqueta conocida.
func IntegrationType(label string) string {
	if k, ok := integrationKeys[label]; ok {
		return k
	}
	return label
}

func lookup(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}
