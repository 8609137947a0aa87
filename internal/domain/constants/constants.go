package constants

// Allocator konstantalari
const (
	// PSUHeadroomFactor PSU quvvati taxminiy yukdan shuncha marta katta bo'lishi kerak
	PSUHeadroomFactor = 1.5

	// DefaultCPUWattage CPU quvvati noma'lum bo'lganda
	DefaultCPUWattage = 65

	// DefaultGPUWattage GPU quvvati noma'lum bo'lganda
	DefaultGPUWattage = 100

	// BaseSystemWattage motherboard, RAM, disk va fanlar uchun
	BaseSystemWattage = 100
)

// Validator konstantalari
const (
	// IssuePenalty har bir moslik xatosi uchun ball jarimasi
	IssuePenalty = 20

	// BottleneckThresholdPct shu foizdan yuqori farq bottleneck hisoblanadi
	BottleneckThresholdPct = 15.0

	// SuggestionScoreRatio tavsiya etilgan qism kamida shu nisbatdagi ballga ega bo'lishi kerak
	SuggestionScoreRatio = 0.8

	// SuggestionMaxPriceFactor GPU tavsiyasi joriy narxdan shuncha martadan arzon bo'lishi kerak
	SuggestionMaxPriceFactor = 3.0

	// UpgradeMaxPriceFactor upgrade joriy narxdan 40% dan ko'p qimmat bo'lmasligi kerak
	UpgradeMaxPriceFactor = 1.4

	// MinRecommendedRAMGB tavsiya etilgan minimal RAM
	MinRecommendedRAMGB = 16

	// DefaultCurrencySymbol upgrade sabablarida ishlatiladigan valyuta
	DefaultCurrencySymbol = "₹"
)

// Benchmark konstantalari
const (
	// SystemOverheadWatts benchmark quvvat hisobida tizim yuklamasi
	SystemOverheadWatts = 80

	// FPSMin / FPSMax FPS chegaralari
	FPSMin = 8
	FPSMax = 300
)

// AI Model konstantalari
const (
	// GeminiModelName Gemini AI model nomi
	GeminiModelName = "gemini-2.5-flash"

	// AITemperature AI javob aniqlik darajasi (0.0-1.0)
	AITemperature = 0.3

	// AITopK Top-K sampling parametri
	AITopK = 20

	// AITopP Top-P sampling parametri
	AITopP = 0.9

	// MaxRetries AI ga so'rov yuborish uchun max urinishlar
	MaxRetries = 3

	// RetryDelay har bir urinish o'rtasidagi kutish vaqti (soniya)
	RetryDelay = 2
)

// External optimizer konstantalari
const (
	// DefaultOptimizerTimeout external optimizer uchun (soniya)
	DefaultOptimizerTimeout = 30

	// DefaultOptimizerStrategy multi-strategy javobidan tanlanadigan variant
	DefaultOptimizerStrategy = "performance"
)
