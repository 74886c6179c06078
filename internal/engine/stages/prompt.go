package stages

// LLM prompt templates: data only, no logic.

// channelAnalysisPrompt profiles a channel from its video list.
// Args: channel id, video lines.
const channelAnalysisPrompt = `你是一位頂尖的 YouTube 頻道策略分析師。我正在研究一個頻道，其 ID 為 %s。
請根據我提供的最新影片清單（標題與瀏覽數），用專業、有條理的方式分析這個頻道。

影片清單:
%s

請嚴格遵循以下 Markdown 表格格式進行分析，不要有任何多餘的文字描述：

### 1. YouTuber介紹
| 創作者名稱 | 專長 | 風格 |
| :--- | :--- | :--- |
| (創作者名稱) | (根據影片內容推測創作者的專業領域) | (根據影片內容推測創作者的風格) |

### 2. 頻道介紹
| 頻道核心內容與價值主張 |
| :--- |
| (總結頻道的核心內容與價值主張) |

### 3.1 頻道內容剖析
| 影片類型 | 範例影片標題 | 影片數量 | 平均瀏覽數 | 目標受眾需求 |
| :--- | :--- | :--- | :--- | :--- |
| (例如：個股分析) | (挑選1-2個代表性標題) | (影片數量) | (平均瀏覽數) | (說明滿足了觀眾什麼需求) |
| (例如：市場趨勢) | (挑選1-2個代表性標題) | (影片數量) | (平均瀏覽數) | (說明滿足了觀眾什麼需求) |

### 3.2 Top 10 熱門影片分析
| 排名 | 標題名稱 | 瀏覽數 | 洞察分析 (為何受歡迎) |
| :--- | :--- | :--- | :--- |
| 1 | (瀏覽數最高的影片標題) | (對應的瀏覽數) | (分析這支影片爆紅的原因) |
| 2 | ... | ... | ... |

### 4. 受眾輪廓分析
| 重要性排序 | 受眾類型 | 心理驅動 | 受眾特徵 | 觀看行為/內容偏好 | 代表影片（觀看數） |
| :--- | :--- | :--- | :--- | :--- | :--- |
| (根據該影片類型影片數以及平均瀏覽數兩個維度分析，將該影片類型的受眾依照重要性排序) | (該影片類型的受眾類型) | (該影片類型受眾的心理驅動) | (該影片類型的受眾特徵) | (該影片類型受眾觀看行為/內容偏好) | (該影片類型代表影片與觀看數) |`

// painPointPrompt finds fan pain points in question comments.
// Args: channel id, comment lines.
const painPointPrompt = `你是一位敏銳的市場分析與產品開發專家。我正在研究 ID 為 %s 的 YouTube 頻道，並收集了觀眾最近的提問留言。
請根據這些留言，分析粉絲的痛點，並提出具體的變現建議（例如：線上課程或 App）。

用戶提問留言:
%s

請嚴格遵循以下 Markdown 表格格式進行分析，不要有任何多餘的文字描述：

### 1. 粉絲痛點分析
| 痛點分類 | 核心問題 | 留言數 | 留言範例 |
| :--- | :--- | :--- | :--- |
| **(例如：知識系統化)** | 粉絲覺得資訊零散，希望能有系統地學習。 | (估算該痛點類型留言數) | (挑選1-2則代表性留言) |
| **(例如：實作困難)** | 知道理論但不知如何實際操作或應用。 | (估算該痛點類型留言數) | (挑選1-2則代表性留言) |

### 2. 商業變現建議
| 欲解決的痛點 | 解決方案 | 理由 | 推薦內容/功能 |
| :--- | :--- | :--- | :--- |
| (想要解決的粉絲痛點分類，根據上方1. 粉絲痛點分析的痛點分類) | (解決方案建議) | (說明為何這個方案適合解決粉絲痛點) | (具體提出課程單元或 App 核心功能) |`

// insightPrompt digs out the target-audience insight for one product category.
// Args: [1] product label, [2] channel analysis, [3] pain-point analysis.
const insightPrompt = `你是一位頂尖的市場策略家與消費者心理分析專家。請深度學習以下關於一位 KOL 的綜合分析資料，
並為其規劃的「%[1]s」挖掘出最核心的目標客群洞察 (Target Audience Insights)。

---
### 綜合分析資料

#### 頻道受眾與內容分析:
%[2]s

#### 粉絲痛點與需求分析:
%[3]s
---

請嚴格依照以下架構，以第一人稱（"我"）的角度，深入地剖析目標客群的心理狀態，產出洞察報告。

### %[1]s 目標客群洞察 (TA Insight)

#### Belief / Myth (信念/迷思)
我對於這類「%[1]s」的認知是什麼？我相信什麼？我所認定的事實是什麼？

#### Need / Pain Point (需求/痛點)
我的核心需求或最大痛點是什麼？

#### Current Solutions (現有解決方案)
為了解決這個痛點，我目前都是怎麼做的？

#### Limitation / Unsatisfaction (限制/不滿)
為什麼我目前的需求或痛點，仍然不能被現有的解決方案完全滿足？

#### Functional Benefit (功能效益 - 表層需求)
在功能上，我最想要這個「%[1]s」帶給我什麼具體的好處？

#### Emotional Benefit (情感效益 - 深層需求)
在使用這個「%[1]s」後，我最渴望獲得什麼樣的情感滿足或心理轉變？

#### Parity Benefit (市場入場券)
我認為這類的「%[1]s」一定要有哪些基本的功能或效益，才值得我考慮？

#### Differentiation Benefit (差異化價值 - USP)
需要有什麼獨特的功能、體驗或價值，才能讓我眼睛一亮，並強烈地想要擁有你們的「%[1]s」？

#### RTB (Reason-to-Believe / 信任狀)
為什麼我應該要相信你們的「%[1]s」真的能提供上述的所有效益？(例如：KOL的專業度、課程設計、社群見證等)`

// monetizationPrompt turns the insight into concrete product ideas.
// Args: [1] product label, [2] insight.
const monetizationPrompt = `你是一位擅長知識變現與數位產品規劃的商業顧問。
請根據下方的【目標客群深度 Insight】，為這位 KOL 規劃「%[1]s」的具體商業化構想。

---
### 【目標客群深度 Insight】
%[2]s
---

請嚴格遵循以下 Markdown 表格格式進行分析，不要有任何多餘的文字描述：

### 1. %[1]s 商業化構想
| 方案名稱 | 對應痛點/需求 | 核心內容/功能 | 產品形式與規格 | 建議定價 | 預期效益 |
| :--- | :--- | :--- | :--- | :--- | :--- |
| (方案名稱) | (根據 Insight 中的 Need / Pain Point) | (具體的課程單元或 App 核心功能) | (例如：8 堂錄播課 + 社群) | (價格區間與理由) | (對粉絲與 KOL 的效益) |

### 2. 推薦方案
| 推薦方案 | 產品描述 | 推薦理由 |
| :--- | :--- | :--- |
| (上方最推薦的一個方案) | (以 3-5 句話完整描述這個產品：給誰、解決什麼、包含什麼) | (為何優先推出這個方案) |`

// bvpPrompt builds the brand value proposition for a described product.
// Args: [1] product description, [2] insight.
const bvpPrompt = `你是一位資深的品牌策略顧問，專長是為 KOL 的數位產品建立品牌價值主張 (Brand Value Proposition)。

### 產品描述
%[1]s

---
### 【目標客群深度 Insight】
%[2]s
---

請根據產品描述與目標客群 Insight，嚴格遵循以下 Markdown 表格格式產出品牌價值主張，不要有任何多餘的文字描述：

### 品牌價值主張 (BVP)
| 項目 | 內容 |
| :--- | :--- |
| 目標客群 (Target) | (這個產品最核心的使用者是誰) |
| 客群洞察 (Insight) | (以第一人稱一句話說出目標客群未被滿足的心聲) |
| 功能效益 (Functional Benefit) | (產品具體帶來的好處) |
| 情感效益 (Emotional Benefit) | (使用後獲得的情感滿足或心理轉變) |
| 市場入場券 (Parity Benefit) | (同類產品都必須具備的基本效益) |
| 差異化價值 (USP) | (只有這個產品做得到的獨特價值) |
| 信任狀 (RTB) | (為什麼目標客群應該相信上述效益) |
| 品牌主張 (Brand Promise) | (一句話的品牌承諾) |
| 品牌標語 (Tagline) | (10 字以內的短標語) |`

// funnelPrompt analyses barriers and drivers between two funnel stages.
// Args: [1] KOL, [2] audience label, [3] product label,
// [4] start label, [5] start index, [6] end label, [7] end index,
// [8] insight, [9] product description, [10] BVP.
const funnelPrompt = `你是一位世界級的行銷漏斗策略專家 (Marketing Funnel Strategist)。

### 分析背景
我們把行銷 funnel 分成以下幾個階段：
- 階段0：陌生、未知這項產品或服務。
- 階段1：知悉、接觸過這項產品或服務。
- 階段2：感興趣、比較這項產品或服務與現有解決方案的差異。
- 階段3：體驗、試用這項產品或服務。
- 階段4：首購、使用這項產品或服務。
- 階段5：再購、續用這項產品或服務。
- 階段6：分享、推薦這項產品或服務。

### 任務目標
我們現在的目標客群是 **%[1]s** 的 **「%[2]s」**。
對於 **「%[3]s」** 這項產品，他們目前正處於 **「%[4]s (階段%[5]d)」**。
我們的目標是引導他們從 **階段%[5]d** 移動到 **「%[6]s (階段%[7]d)」**。

### 核心指令
請根據下方提供的【目標客群深度 Insight】、【產品描述】與【品牌價值主張】，一步一步地分析：為了讓目標客群完成上述的階段移動，我們在每一個過渡階段會遇到哪些**阻力(Barriers)**或**驅力(Drivers)**？

**請特別注意：**
1. 這裡的阻力與驅力，請專注於**與產品效益(Benefits)無直接相關**的因素，例如：使用者習慣、心理門檻、社群影響、轉換流程的便利性、價格感知等。
2. 請明確列出在每個階段可以與目標客群互動的**接觸點 (Touchpoints)**。
3. 針對每一項阻力，提出對應的**關鍵任務 (Key Task)** 或 **突破點**，說明該如何設計行動來幫助用戶跨越障礙，順利往下一階段移動。

---
### 【目標客群深度 Insight】
%[8]s

### 【產品描述】
%[9]s

### 【品牌價值主張】
%[10]s
---

請用清晰的、結構化的 Markdown 格式呈現你的分析報告，每個過渡階段至少包含下列表格，不用其他多餘的文字：

#### 階段X → 階段Y
| 類型 | 因素 | 接觸點 (Touchpoints) | 關鍵任務 (Key Task) |
| :--- | :--- | :--- | :--- |
| 阻力 | (阻力描述) | (接觸點) | (突破點與行動設計) |
| 驅力 | (驅力描述) | (接觸點) | (如何放大驅力) |`
