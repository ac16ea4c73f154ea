package i18n

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Add macro": {
		"pt": "Adicionar macro",
		"es": "Añadir macro",
		"ru": "Добавить макрос",
		"zh": "新增按鍵設定",
	},
	"Start all": {
		"pt": "Iniciar todos",
		"es": "Iniciar todos",
		"ru": "Запустить все",
		"zh": "全部開始",
	},
	"Stop all": {
		"pt": "Parar todos",
		"es": "Parar todos",
		"ru": "Остановить все",
		"zh": "全部停止",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
		"zh": "開始",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
		"ru": "Стоп",
		"zh": "停止",
	},
	"Remove": {
		"pt": "Remover",
		"es": "Eliminar",
		"ru": "Удалить",
		"zh": "移除",
	},
	"Key: not set": {
		"pt": "Tecla: não definida",
		"es": "Tecla: sin definir",
		"ru": "Клавиша: не задана",
		"zh": "按鍵: 尚未設定",
	},
	"Key: %s": {
		"pt": "Tecla: %s",
		"es": "Tecla: %s",
		"ru": "Клавиша: %s",
		"zh": "按鍵: %s",
	},
	"Set key": {
		"pt": "Definir tecla",
		"es": "Definir tecla",
		"ru": "Задать клавишу",
		"zh": "點此設定按鍵",
	},
	"Press a key...": {
		"pt": "Pressione uma tecla...",
		"es": "Pulse una tecla...",
		"ru": "Нажмите клавишу...",
		"zh": "請按下一個按鍵...",
	},
	"Interval (seconds)": {
		"pt": "Intervalo (segundos)",
		"es": "Intervalo (segundos)",
		"ru": "Интервал (секунды)",
		"zh": "重複間隔 (秒)",
	},
	"e.g. 0.1, 1, 2.5": {
		"pt": "ex.: 0.1, 1, 2.5",
		"es": "p. ej.: 0.1, 1, 2.5",
		"ru": "напр.: 0.1, 1, 2.5",
		"zh": "例如: 0.1, 1, 2.5",
	},
	"every %s s": {
		"pt": "a cada %s s",
		"es": "cada %s s",
		"ru": "каждые %s с",
		"zh": "間隔: %s 秒",
	},
	"OK": {
		"zh": "確定",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
		"zh": "取消",
	},
	"Please capture a key first.": {
		"pt": "Defina uma tecla primeiro.",
		"es": "Defina una tecla primero.",
		"ru": "Сначала задайте клавишу.",
		"zh": "請先設定一個按鍵。",
	},
	"Invalid interval: enter a positive number (e.g. 0.5).": {
		"pt": "Intervalo inválido: informe um número positivo (ex.: 0.5).",
		"es": "Intervalo no válido: introduzca un número positivo (p. ej. 0.5).",
		"ru": "Неверный интервал: введите положительное число (напр. 0.5).",
		"zh": "無效的間隔時間，請輸入一個正數 (例如 0.5)。",
	},
	"Key capture failed. Make sure no other program holds the keyboard, then try again.": {
		"pt": "Falha ao capturar a tecla. Verifique se nenhum outro programa está usando o teclado e tente novamente.",
		"es": "No se pudo capturar la tecla. Compruebe que ningún otro programa usa el teclado e inténtelo de nuevo.",
		"ru": "Не удалось захватить клавишу. Убедитесь, что клавиатуру не занимает другая программа, и повторите.",
		"zh": "無法擷取按鍵，請確保沒有其他程式獨佔鍵盤後再試一次。",
	},
	"KeyPulse needs Accessibility permission. Open System Settings > Privacy & Security > Accessibility and add KeyPulse (or your terminal), then try again.": {
		"pt": "O KeyPulse precisa de permissão de Acessibilidade. Abra Ajustes do Sistema > Privacidade e Segurança > Acessibilidade, adicione o KeyPulse (ou seu terminal) e tente novamente.",
		"es": "KeyPulse necesita permiso de Accesibilidad. Abra Ajustes del Sistema > Privacidad y seguridad > Accesibilidad, añada KeyPulse (o su terminal) e inténtelo de nuevo.",
		"ru": "KeyPulse нужен доступ к Универсальному доступу. Откройте Системные настройки > Конфиденциальность и безопасность > Универсальный доступ, добавьте KeyPulse (или терминал) и повторите.",
		"zh": "需要輔助使用權限：前往 系統設定 > 隱私權與安全性 > 輔助使用，將本程式 (或您的終端機) 加入列表後再試一次。",
	},
	"Add at least one macro first.": {
		"pt": "Adicione pelo menos uma macro primeiro.",
		"es": "Añada al menos una macro primero.",
		"ru": "Сначала добавьте хотя бы один макрос.",
		"zh": "請先新增至少一個按鍵設定。",
	},
	"No enabled macros to start.": {
		"pt": "Nenhuma macro habilitada para iniciar.",
		"es": "No hay macros habilitadas para iniciar.",
		"ru": "Нет включённых макросов для запуска.",
		"zh": "沒有已啟用的按鍵設定可以開始。",
	},
	"Notice": {
		"pt": "Aviso",
		"es": "Aviso",
		"ru": "Уведомление",
		"zh": "提示",
	},
	"Key injection failed": {
		"pt": "Falha ao simular tecla",
		"es": "Error al simular la tecla",
		"ru": "Не удалось нажать клавишу",
		"zh": "模擬按鍵時發生錯誤",
	},
	"No macros yet. Use \"Add macro\" to create one.": {
		"pt": "Nenhuma macro ainda. Use \"Adicionar macro\" para criar uma.",
		"es": "Aún no hay macros. Use \"Añadir macro\" para crear una.",
		"ru": "Макросов пока нет. Нажмите «Добавить макрос».",
		"zh": "尚無按鍵設定，請按「新增按鍵設定」。",
	},
	"Help": {
		"pt": "Ajuda",
		"es": "Ayuda",
		"ru": "Справка",
		"zh": "說明",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
		"zh": "關閉",
	},
}

func init() {
	lang = detectLang(os.Getenv("KEYPULSE_LANG"), locale.GetLocales)
	log.Printf("Language set to: %s", lang)
}

// detectLang prefers the forced value, then the first user locale.
func detectLang(forced string, userLocales func() ([]string, error)) string {
	// Check for override environment variable
	if forced = strings.TrimSpace(forced); forced != "" {
		log.Printf("KEYPULSE_LANG is set to: '%s'", forced)
		return FromLocale(forced)
	}

	locales, err := userLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		return "en"
	}
	if len(locales) == 0 {
		log.Println("No user locale detected, defaulting to english")
		return "en"
	}
	return FromLocale(locales[0])
}

// FromLocale maps a locale such as "pt-BR" or "zh_TW" to a supported language.
func FromLocale(l string) string {
	for _, prefix := range []string{"pt", "es", "ru", "zh"} {
		if strings.HasPrefix(strings.ToLower(l), prefix) {
			return prefix
		}
	}
	return "en"
}

func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// Tf translates a format string and applies args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

func GetLang() string {
	return lang
}

// SetLang overrides the detected language.
func SetLang(l string) {
	lang = l
}
