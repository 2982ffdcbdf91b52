package domain

func testCountries() []CountryEntry {
	return []CountryEntry{
		{ISO3: "BRA", ISO2: "BR", NameZH: "巴西", NameEN: "Brazil", ISONameZH: "巴西聯邦共和國", Aliases: "巴西"},
		{ISO3: "ARG", ISO2: "AR", NameZH: "阿根廷", NameEN: "Argentina", Aliases: "阿根廷|阿國"},
		{ISO3: "USA", ISO2: "US", NameZH: "美國", NameEN: "United States", ISONameZH: "美利堅合眾國", Aliases: "美國"},
		{ISO3: "JPN", ISO2: "JP", NameZH: "日本", NameEN: "Japan", Aliases: "日本"},
		{ISO3: "COG", ISO2: "CG", NameZH: "剛果", NameEN: "Congo", ISONameZH: "剛果共和國", Aliases: "剛果|剛果(布)"},
		{ISO3: "COD", ISO2: "CD", NameZH: "剛果民主共和國", NameEN: "Democratic Republic of the Congo", Aliases: "民主剛果||剛果(金)"},
		{ISO3: "PRI", NameZH: "波多黎各", Aliases: "波多黎各"},
		{ISO2: "ZZ", NameZH: "無代碼"},
	}
}

func testCatalog() *Catalog {
	diseases := NewDiseaseDictionary(
		map[string]string{
			"登革熱":      "登革熱",
			"COVID-19": "新冠肺炎",
			"麻疹/德國麻疹":  "麻疹/德國麻疹",
			"茲卡病毒感染症":  "茲卡",
		},
		map[string]string{
			"登革熱":  "Dengue fever",
			"新冠肺炎": "COVID-19",
			"麻疹":   "Measles",
			"德國麻疹": "Rubella",
			"茲卡":   "Zika",
		},
		map[string]string{
			"登革熱": "病媒傳染",
			"麻疹":  "空氣或飛沫傳染",
		},
	)
	regions := NewRegionTable(
		map[string]string{"BRA": "美洲", "ARG": "美洲", "USA": "美洲", "JPN": "西太平洋", "COG": "非洲", "COD": "非洲"},
		map[string]string{"PRI": "美洲"},
		map[string]string{"美洲": "Americas", "西太平洋": "Western Pacific", "非洲": "Africa", OtherRegion: OtherRegionEN},
	)
	sources := map[string]string{"who eis": "who", "美國cdc": "us cdc", "WHO Event Information Site for IHR National Focal Point": "who"}
	return NewCatalog(NewCountryIndex(testCountries()), diseases, regions, sources)
}
