package service

import (
	"fmt"
	"strings"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// HintFridge is the only recognition domain. Unknown hints fall back to it.
const HintFridge = "fridge"

const analysisSchemaName = "inventory_analysis"

// recognitionDomain pairs the instruction and answer schema for one kind of
// photo.
type recognitionDomain struct {
	prompt func(today models.Date) string
	schema map[string]interface{}
}

var recognitionDomains = map[string]recognitionDomain{
	HintFridge: {prompt: fridgePrompt, schema: fridgeSchema()},
}

func domainFor(hint string) recognitionDomain {
	if d, ok := recognitionDomains[strings.ToLower(strings.TrimSpace(hint))]; ok {
		return d
	}
	return recognitionDomains[HintFridge]
}

func fridgePrompt(today models.Date) string {
	return fmt.Sprintf("识别这张图片中的所有食物。图片可能是冰箱内部照片，也可能是购物小票/收据。"+
		"如果是小票，请提取上面的所有购买项。对于每个食物：如果是新鲜食材，请预估从今天(%s)开始的保质期；"+
		"如果是包装食品，请尝试读取标签。为每个食物建议一个分类(如%s)和数量，并给出一个合适的 emoji。"+
		"请全部使用简体中文返回。如果图片中有多个物品，请全部识别出来。",
		today, strings.Join(models.FridgeCategories, "、"))
}

func fridgeSchema() map[string]interface{} {
	item := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":         map[string]interface{}{"type": "string", "description": "食物名称 (中文)"},
			"category":     map[string]interface{}{"type": "string", "description": "类别，如蔬菜、水果、乳制品 (中文)"},
			"expiryDate":   map[string]interface{}{"type": "string", "description": "预估过期日期 YYYY-MM-DD"},
			"quantity":     map[string]interface{}{"type": "string", "description": "数量，例如 '1把', '500g', '1盒' (中文)"},
			"suggestedUse": map[string]interface{}{"type": "string", "description": "简短的存储或食用建议 (中文)"},
			"emoji":        map[string]interface{}{"type": "string", "description": "代表该食物的 emoji"},
		},
		"required": []string{"name", "category"},
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"items": map[string]interface{}{
				"type":        "array",
				"description": "识别到的所有物品列表",
				"items":       item,
			},
			"totalCount": map[string]interface{}{"type": "number", "description": "识别到的物品总数"},
		},
		"required": []string{"items"},
	}
}

// chatSystemInstruction builds the assistant persona with the active items
// and recipes of the session.
func chatSystemInstruction(items []models.InventoryItem, recipes []models.Recipe) string {
	var fridge []string
	for _, i := range items {
		if !i.IsActive() {
			continue
		}
		quantity := i.Quantity
		if quantity == "" {
			quantity = "1"
		}
		expiry := "无日期"
		if i.ExpiryDate != nil {
			expiry = i.ExpiryDate.String()
		}
		fridge = append(fridge, fmt.Sprintf("- %s (%s, %s)", i.Name, quantity, expiry))
	}

	var cookbook []string
	for _, r := range recipes {
		cookbook = append(cookbook, fmt.Sprintf("- %s (标签: %s)", r.Name, strings.Join(r.Tags, ", ")))
	}

	return fmt.Sprintf(`你是 ZenKitchen 的 AI 助手，一个优雅、极简、富有智慧的厨房管家。
你的目标是帮助用户过上更正念（Mindful）、更有条理的生活，减少食物浪费。

你拥有用户当前的物品数据：

【冰箱食材】
%s

【私房菜谱】
%s

请遵循以下原则：
1. **基于数据回答**：当用户问"吃什么"时，优先推荐能消耗即将过期食材的食谱。
2. **极简主义**：回答言简意赅，不要长篇大论。
3. **正念生活**：鼓励用户减少浪费，珍惜食材，享受烹饪的过程。
4. **格式美观**：使用 Markdown，适当使用 emoji，保持排版清晰。
5. **语言**：始终使用简体中文。

如果用户问的问题与厨房管理无关，请礼貌地将话题引回到食材管理和烹饪上，或者提供简短的生活建议。`,
		listOrEmpty(fridge), listOrEmpty(cookbook))
}

func listOrEmpty(lines []string) string {
	if len(lines) == 0 {
		return "(空)"
	}
	return strings.Join(lines, "\n")
}
