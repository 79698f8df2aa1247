package room

// Provinces 1520 年奥斯曼时代的行省名录，每个行省同一房间内至多一名玩家
var Provinces = []string{
	// 安纳托利亚行省
	"Rum Eyaleti", "Anadolu Eyaleti", "Karaman Eyaleti", "Dulkadir Eyaleti",
	"Diyarbekir Eyaleti", "Trabzon Eyaleti",
	// 安纳托利亚旗区
	"Kastamonu Sancağı", "Bolu Sancağı", "Hüdavendigar Sancağı", "Karesi Sancağı",
	"Saruhan Sancağı", "Aydın Sancağı", "Menteşe Sancağı", "Teke Sancağı", "Hamid Sancağı",
	// 巴尔干行省
	"Rumeli Eyaleti",
	// 巴尔干旗区
	"Selanik Sancağı", "Mora Sancağı", "Yanya Sancağı", "Ohri Sancağı",
	"Üsküp Sancağı", "Kosova Sancağı", "Semendire Sancağı", "Vidin Sancağı",
	"Niğbolu Sancağı", "Silistre Sancağı", "Bosna Sancağı", "Hersek Sancağı", "Arnavutluk Sancağı",
	// 中东
	"Halep Eyaleti", "Şam Eyaleti", "Rakka Sancağı", "Musul Sancağı",
	// 非洲
	"Mısır Eyaleti", "Trablusgarp Eyaleti", "Cezayir Eyaleti",
	// 附庸国
	"Kırım Hanlığı", "Eflak Voyvodalığı", "Boğdan Voyvodalığı", "Erdel Prensliği", "Ragusa Cumhuriyeti",
	// 邻国（可选）
	"Safevi İmparatorluğu", "Macaristan Krallığı", "Venedik", "Lehistan-Litvanya",
}

// availableProvinces 返回未被占用的行省。调用方必须持有房间锁
func (r *Room) availableProvinces() []string {
	taken := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		if p.Province != "" {
			taken[p.Province] = true
		}
	}

	available := make([]string, 0, len(Provinces))
	for _, prov := range Provinces {
		if !taken[prov] {
			available = append(available, prov)
		}
	}
	return available
}

// AvailableProvinces 返回未被占用的行省列表
func (r *Room) AvailableProvinces() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.availableProvinces()
}
